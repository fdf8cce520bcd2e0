package api

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/cloudalerts/internal/models"
)

// RawAlert is one notification record as delivered by the server: a type
// code ("t") plus type specific fields.
type RawAlert struct {
	Fields Fields
	Type   models.AlertType
}

// UnmarshalJSON splits the "t" member from the remaining fields.
func (r *RawAlert) UnmarshalJSON(data []byte) error {
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode user alert: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("user alert is not an object")
	}

	r.Type = models.AlertType(fields.String("t", ""))
	delete(fields, "t")
	r.Fields = fields
	return nil
}

// MarshalJSON writes the record back in wire form.
func (r RawAlert) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	t, err := json.Marshal(string(r.Type))
	if err != nil {
		return nil, err
	}
	out["t"] = t
	return json.Marshal(out)
}

// PendingContactUser describes a user referenced by catch-up alerts.
type PendingContactUser struct {
	Handle      string   `json:"u"`  // Handle base64 handle пользователя
	Email       string   `json:"m"`  // Email основной email
	DisplayName string   `json:"n"`  // DisplayName имя пользователя
	AltEmails   []string `json:"m2"` // AltEmails дополнительные адреса
}

// CatchupPayload is the bulk replay of historical alerts sent at session start.
type CatchupPayload struct {
	LastSeenNumber string               `json:"lsn"` // LastSeenNumber последнее просмотренное уведомление
	FirstSeqNumber string               `json:"fsn"` // FirstSeqNumber первый sequence number
	Users          []PendingContactUser `json:"u"`
	Alerts         []RawAlert           `json:"c"`
	LastSeenDelta  int64                `json:"ltd"` // LastSeenDelta дельта времени последнего просмотра
	Skipped        int                  `json:"-"`   // Skipped записи, которые не удалось разобрать
}

// UnmarshalJSON decodes the replay leniently. Ill-typed markers fall back to
// their zero value and users or alerts that cannot be decoded are skipped,
// so one bad record does not cost the rest of the replay. Only a payload
// that is not a JSON object is an error.
func (p *CatchupPayload) UnmarshalJSON(data []byte) error {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode catch-up payload: %w", err)
	}
	if f == nil {
		return fmt.Errorf("catch-up payload is not an object")
	}

	*p = CatchupPayload{
		LastSeenNumber: f.String("lsn", ""),
		FirstSeqNumber: f.String("fsn", ""),
		LastSeenDelta:  f.Int64("ltd", 0),
	}

	var users []json.RawMessage
	f.Decode("u", &users)
	for _, item := range users {
		var u PendingContactUser
		if err := json.Unmarshal(item, &u); err != nil {
			p.Skipped++
			continue
		}
		p.Users = append(p.Users, u)
	}

	var alerts []json.RawMessage
	f.Decode("c", &alerts)
	for _, item := range alerts {
		var raw RawAlert
		if err := json.Unmarshal(item, &raw); err != nil {
			p.Skipped++
			continue
		}
		p.Alerts = append(p.Alerts, raw)
	}
	return nil
}
