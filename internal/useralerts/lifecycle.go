package useralerts

import (
	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/pkg/api"
)

// AcknowledgeAll marks every unseen alert as seen, re-tags the ones not
// raised by an external action with reqTag, queues them for notification
// and asks the server to store the acknowledgment.
func (u *UserAlerts) AcknowledgeAll(reqTag int) {
	for _, id := range u.alerts {
		b := u.byID[id].Common()
		if b.Seen {
			continue
		}
		b.Seen = true
		if b.Tag != models.TagExternal {
			b.Tag = reqTag
		}
		u.notify = append(u.notify, id)
	}

	if u.commands == nil {
		u.logger.Warn("No command queue configured, acknowledgment not sent")
		return
	}
	u.commands.SetLastAcknowledged(reqTag)
}

// OnAcknowledgeReceived applies an acknowledgment confirmed by the server.
func (u *UserAlerts) OnAcknowledgeReceived() {
	if !u.state.caughtUp() {
		return
	}
	for _, id := range u.alerts {
		b := u.byID[id].Common()
		if b.Seen {
			continue
		}
		b.Seen = true
		b.Tag = models.TagExternal
		u.notify = append(u.notify, id)
	}
}

// Clear drops every committed alert and the notify queue and resets the
// catch-up state and id counter. Used on session reset.
func (u *UserAlerts) Clear() {
	u.alerts = nil
	u.byID = make(map[uint32]models.Alert)
	u.notify = nil
	u.pendingUsers = make(map[models.Handle]api.PendingContactUser)
	u.state.resetCatchup()
	u.nextID = 0
}
