package useralerts

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/pkg/api"
)

// BeginCatchup marks the start of the bulk replay.
func (u *UserAlerts) BeginCatchup() {
	if u.state.catchup != CatchupIdle {
		u.logger.Warn("Catch-up already started", "state", u.state.catchup)
		return
	}
	u.state.catchup = CatchingUp
}

// ProcessCatchup decodes the replay object, adds every wanted alert it
// carries and completes the catch-up. Records that cannot be decoded are
// skipped. A payload that is not an object at all is logged and the engine
// is still moved to caught-up so the session can go on without history;
// the returned error wraps ErrMalformedReplay.
func (u *UserAlerts) ProcessCatchup(data []byte) error {
	var payload api.CatchupPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		u.logger.Error("Error parsing user alerts replay", "error", err)
		u.state.catchup = CaughtUp
		return fmt.Errorf("%w: %v", ErrMalformedReplay, err)
	}

	u.ApplyCatchup(&payload)
	return nil
}

// ApplyCatchup ingests an already decoded replay and completes the catch-up.
func (u *UserAlerts) ApplyCatchup(payload *api.CatchupPayload) {
	if u.state.catchup == CatchupIdle {
		u.state.catchup = CatchingUp
	}

	for _, pu := range payload.Users {
		h, ok := models.DecodeHandle(pu.Handle, models.UserHandleSize)
		if !ok || h == 0 {
			continue
		}
		u.pendingUsers[h] = pu
	}

	if h, ok := models.DecodeHandle(payload.LastSeenNumber, 8); ok {
		u.state.lsn = h
	}
	if h, ok := models.DecodeHandle(payload.FirstSeqNumber, 8); ok {
		u.state.fsn = h
	}
	u.state.lastTimeDelta = payload.LastSeenDelta

	added := 0
	for i := range payload.Alerts {
		raw := &payload.Alerts[i]
		if u.IsUnwantedAlert(raw.Type, raw.Fields.Int("c", -1)) {
			continue
		}
		if u.AddRaw(raw) {
			added++
		}
	}

	if payload.Skipped > 0 {
		u.logger.Warn("Skipped malformed records in user alerts replay", "skipped", payload.Skipped)
	}

	u.CompleteCatchup()
	u.logger.Info("User alerts catch-up completed",
		"received", len(payload.Alerts),
		"skipped", payload.Skipped,
		"accepted", added,
		"committed", len(u.alerts))
}

// CompleteCatchup computes the seen flags of the replayed alerts, backfills
// missing emails from the pending-contact users and enters caught-up.
func (u *UserAlerts) CompleteCatchup() {
	now := u.now()
	for _, id := range u.alerts {
		b := u.byID[id].Common()
		b.Seen = b.Timestamp+u.state.lastTimeDelta < now

		if b.UserEmail != "" || b.UserHandle.IsUndef() {
			continue
		}
		if pu, ok := u.pendingUsers[b.UserHandle]; ok {
			b.UserEmail = pu.Email
			if b.UserEmail == "" && len(pu.AltEmails) > 0 {
				b.UserEmail = pu.AltEmails[0]
			}
		}
	}
	u.state.catchup = CaughtUp
}

// LastSeenMarkers returns the last-seen boundaries received with the replay.
func (u *UserAlerts) LastSeenMarkers() models.SeenMarkers {
	return models.SeenMarkers{
		LastSeenNumber: u.state.lsn,
		FirstSeqNumber: u.state.fsn,
		LastTimeDelta:  u.state.lastTimeDelta,
	}
}

// RestoreSeenMarkers reinstates markers kept from an earlier run.
func (u *UserAlerts) RestoreSeenMarkers(m models.SeenMarkers) {
	u.state.lsn = m.LastSeenNumber
	u.state.fsn = m.FirstSeqNumber
	u.state.lastTimeDelta = m.LastTimeDelta
}
