package models

import (
	"encoding/base64"
	"encoding/binary"
	"strconv"
)

// Handle идентифицирует пользователя, узел или pending contact request.
// На проводе передается как base64url без паддинга.
type Handle uint64

// Undef обозначает отсутствующий handle.
const Undef Handle = ^Handle(0)

// Handle sizes in bytes as they appear on the wire.
const (
	UserHandleSize = 8
	NodeHandleSize = 6
	PCRHandleSize  = 8
)

// IsUndef reports whether h is the undefined handle.
func (h Handle) IsUndef() bool {
	return h == Undef
}

// Encode returns the base64url form of the first size bytes of h.
func (h Handle) Encode(size int) string {
	if size <= 0 || size > 8 {
		size = 8
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(h))
	return base64.RawURLEncoding.EncodeToString(buf[:size])
}

// String is used for logging only.
func (h Handle) String() string {
	if h.IsUndef() {
		return "UNDEF"
	}
	return strconv.FormatUint(uint64(h), 10)
}

// DecodeHandle parses a base64url handle that must decode to exactly size bytes.
func DecodeHandle(s string, size int) (Handle, bool) {
	if size <= 0 || size > 8 {
		return Undef, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil || len(raw) != size {
		return Undef, false
	}

	// Старшие байты остаются нулевыми для 6-байтовых handle узлов
	buf := make([]byte, 8)
	copy(buf, raw)
	return Handle(binary.LittleEndian.Uint64(buf)), true
}
