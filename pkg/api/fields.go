package api

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/iudanet/cloudalerts/internal/models"
)

// Fields holds the undecoded members of a server record. The record type is
// often sent after the fields, so values are kept raw and interpreted later.
type Fields map[string]json.RawMessage

// HandleType is one element of a handle/type array ({"h":…,"t":…}).
type HandleType struct {
	Handle models.Handle
	Kind   models.NodeKind
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Int returns the numeric field or def when it is missing or not an integer.
func (f Fields) Int(key string, def int) int {
	v, ok := f.number(key)
	if !ok {
		return def
	}
	return int(v)
}

// Int64 returns the numeric field or def when it is missing or not an integer.
func (f Fields) Int64(key string, def int64) int64 {
	v, ok := f.number(key)
	if !ok {
		return def
	}
	return v
}

// Handle returns the handle field; it must decode to exactly size bytes.
func (f Fields) Handle(key string, size int, def models.Handle) models.Handle {
	s, ok := f.str(key)
	if !ok {
		return def
	}
	h, ok := models.DecodeHandle(s, size)
	if !ok {
		return def
	}
	return h
}

// String returns the string field or def.
func (f Fields) String(key, def string) string {
	s, ok := f.str(key)
	if !ok {
		return def
	}
	return s
}

// NameID returns a short identifier field (for example a result code) or def
// when it is missing or empty.
func (f Fields) NameID(key, def string) string {
	s, ok := f.str(key)
	if !ok || s == "" {
		return def
	}
	return s
}

// HandleTypes decodes an array of {"h","t"} objects. Missing members default
// to Undef and UnknownNode; decoding stops at the first non-object element.
func (f Fields) HandleTypes(key string) []HandleType {
	var items []json.RawMessage
	if !f.Decode(key, &items) {
		return nil
	}

	out := make([]HandleType, 0, len(items))
	for _, item := range items {
		var obj Fields
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			break
		}
		out = append(out, HandleType{
			Handle: obj.Handle("h", models.NodeHandleSize, models.Undef),
			Kind:   models.NodeKind(obj.Int("t", int(models.UnknownNode))),
		})
	}
	return out
}

// Strings decodes an array of strings; non-string elements end the list.
func (f Fields) Strings(key string) []string {
	var items []json.RawMessage
	if !f.Decode(key, &items) {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			break
		}
		out = append(out, s)
	}
	return out
}

// Decode unmarshals the field into v and reports success.
func (f Fields) Decode(key string, v any) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

func (f Fields) number(key string) (int64, bool) {
	raw, ok := f[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (f Fields) str(key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
