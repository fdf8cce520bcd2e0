// Package useralerts turns server change records into user-facing alerts.
//
// UserAlerts is a single-threaded reducer: it is driven by one sequential
// stream of records and node callbacks and performs no locking.
package useralerts

import (
	"log/slog"
	"time"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/pkg/api"
)

// MergeWindow is how close in time (seconds) two node alerts of the same
// user must be to be folded into one.
const MergeWindow = 300

//go:generate moq -out commandqueue_mock.go . CommandQueue

// CommandQueue receives the outbound commands raised by the engine.
type CommandQueue interface {
	// SetLastAcknowledged tells the server that all alerts were seen
	SetLastAcknowledged(tag int)
}

// Option configures UserAlerts.
type Option func(*UserAlerts)

// WithClock replaces the wall clock (unix seconds). Used by tests.
func WithClock(now func() int64) Option {
	return func(u *UserAlerts) {
		u.now = now
	}
}

// WithFlags sets the alert category filter.
func WithFlags(flags models.AlertFlags) Option {
	return func(u *UserAlerts) {
		u.flags = flags
	}
}

// UserAlerts owns the committed alert log, the provisional buffer, the
// notify queue and the shared-node staging maps.
type UserAlerts struct {
	dir      directory.Directory
	commands CommandQueue
	logger   *slog.Logger
	now      func() int64

	byID         map[uint32]models.Alert // арена committed алертов
	pendingUsers map[models.Handle]api.PendingContactUser
	noted        notedNodes
	stash        notedNodes

	alerts       []uint32 // порядок коммита
	notify       []uint32 // ссылки в арену, готовые к доставке
	provisionals []models.Alert

	flags  models.AlertFlags
	state  session
	me     models.Handle
	nextID uint32
}

// New creates an engine for the local account me.
func New(me models.Handle, dir directory.Directory, commands CommandQueue, logger *slog.Logger, opts ...Option) *UserAlerts {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if dir == nil {
		dir = directory.NewMemory()
	}

	u := &UserAlerts{
		dir:          dir,
		commands:     commands,
		logger:       logger,
		now:          func() int64 { return time.Now().Unix() },
		byID:         make(map[uint32]models.Alert),
		pendingUsers: make(map[models.Handle]api.PendingContactUser),
		noted:        make(notedNodes),
		stash:        make(notedNodes),
		flags:        models.DefaultAlertFlags(),
		state:        newSession(),
		me:           me,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// NextID returns a fresh alert id. Ids start at 1 and restart after Clear.
func (u *UserAlerts) NextID() uint32 {
	u.nextID++
	return u.nextID
}

// Now returns the engine clock in unix seconds.
func (u *UserAlerts) Now() int64 {
	return u.now()
}

// Me returns the local account handle.
func (u *UserAlerts) Me() models.Handle {
	return u.me
}

// Flags returns the active category filter.
func (u *UserAlerts) Flags() models.AlertFlags {
	return u.flags
}

// SetFlags replaces the category filter.
func (u *UserAlerts) SetFlags(flags models.AlertFlags) {
	u.flags = flags
}

// CatchupState returns the current catch-up state.
func (u *UserAlerts) CatchupState() CatchupState {
	return u.state.catchup
}

// CatchupDone reports whether the initial replay has been processed.
func (u *UserAlerts) CatchupDone() bool {
	return u.state.caughtUp()
}

// AddRaw builds an alert from a wire record and adds it. It reports false
// for unknown record types, which are dropped.
func (u *UserAlerts) AddRaw(raw *api.RawAlert) bool {
	if raw == nil || !knownType(raw.Type) {
		return false
	}
	a := alertFromRaw(raw, u.NextID(), u.now())
	u.Add(a)
	return true
}

// Add takes ownership of a and either buffers it (provisional mode), drops
// it as a catch-up duplicate, merges it into the log tail or commits it.
func (u *UserAlerts) Add(a models.Alert) {
	if a == nil {
		return
	}
	b := a.Common()

	if u.state.provisional {
		u.provisionals = append(u.provisionals, a)
		return
	}

	if !u.state.caughtUp() {
		if b.Timestamp > u.state.catchupLastTimestamp {
			u.state.catchupLastTimestamp = b.Timestamp
		}
	} else if b.Timestamp < u.state.catchupLastTimestamp {
		// скорее всего дубликат из начальной выгрузки
		u.logger.Warn("Discarding duplicate user alert",
			"type", b.Type,
			"timestamp", b.Timestamp,
			"catchup_timestamp", u.state.catchupLastTimestamp)
		return
	}

	if u.mergeIntoTail(a) {
		return
	}

	if p, ok := a.(*models.Payment); ok && p.Success && len(u.alerts) > 0 {
		u.retireReminders()
	}

	u.updateEmail(a)
	u.alerts = append(u.alerts, b.ID)
	u.byID[b.ID] = a
	u.logger.Debug("Added user alert", "id", b.ID, "type", b.Type, "timestamp", b.Timestamp)

	if u.state.caughtUp() {
		b.Tag = models.TagExternal
		u.notify = append(u.notify, b.ID)
		u.logger.Debug("New user alert added to notify queue", "id", b.ID)
	}
}

// mergeIntoTail folds a node alert into the most recent committed alert of
// the same kind. Only the tail is considered.
func (u *UserAlerts) mergeIntoTail(a models.Alert) bool {
	tail := u.tail()
	if tail == nil {
		return false
	}

	switch in := a.(type) {
	case *models.NewSharedNodes:
		prev, ok := tail.(*models.NewSharedNodes)
		if !ok || !mergeable(&in.Base, &prev.Base) ||
			in.ParentHandle != prev.ParentHandle || in.ParentHandle.IsUndef() {
			return false
		}
		prev.FileNodeHandles = append(prev.FileNodeHandles, in.FileNodeHandles...)
		prev.FolderNodeHandles = append(prev.FolderNodeHandles, in.FolderNodeHandles...)

	case *models.RemovedSharedNode:
		prev, ok := tail.(*models.RemovedSharedNode)
		if !ok || !mergeable(&in.Base, &prev.Base) {
			return false
		}
		prev.NodeHandles = append(prev.NodeHandles, in.NodeHandles...)

	case *models.UpdatedSharedNode:
		prev, ok := tail.(*models.UpdatedSharedNode)
		if !ok || !mergeable(&in.Base, &prev.Base) {
			return false
		}
		prev.NodeHandles = append(prev.NodeHandles, in.NodeHandles...)

	default:
		return false
	}

	b := a.Common()
	u.logger.Debug("Merged user alert", "type", b.Type, "timestamp", b.Timestamp, "into", tail.Common().ID)

	tb := tail.Common()
	if u.state.caughtUp() && (len(u.notify) == 0 || u.notify[len(u.notify)-1] != tb.ID) {
		tb.Seen = false
		tb.Tag = models.TagExternal
		u.notify = append(u.notify, tb.ID)
		u.logger.Debug("Updated user alert added to notify queue", "id", tb.ID)
	}
	return true
}

func mergeable(in, prev *models.Base) bool {
	return in.UserHandle == prev.UserHandle && in.Timestamp-prev.Timestamp < MergeWindow
}

// retireReminders hides payment reminders once a payment succeeded.
func (u *UserAlerts) retireReminders() {
	for _, id := range u.alerts {
		r, ok := u.byID[id].(*models.PaymentReminder)
		if !ok || !r.Relevant {
			continue
		}
		r.Relevant = false
		if u.state.caughtUp() {
			u.notify = append(u.notify, r.ID)
		}
	}
}

// updateEmail refreshes the cached email (and share folder path) from the directory.
func (u *UserAlerts) updateEmail(a models.Alert) {
	b := a.Common()
	if email, ok := u.dir.UserEmail(b.UserHandle); ok {
		b.UserEmail = email
	}

	if ds, ok := a.(*models.DeletedShare); ok {
		if n, found := u.dir.Node(ds.FolderHandle); found {
			ds.FolderName = n.Name
			ds.FolderPath = directory.DisplayPath(u.dir, ds.FolderHandle)
		}
	}
}

func (u *UserAlerts) tail() models.Alert {
	if len(u.alerts) == 0 {
		return nil
	}
	return u.byID[u.alerts[len(u.alerts)-1]]
}

// StartProvisional buffers subsequent alerts until EvalProvisional.
func (u *UserAlerts) StartProvisional() {
	u.state.provisional = true
}

// EvalProvisional leaves provisional mode and commits every buffered alert
// that is eligible given the user who originated the transaction.
func (u *UserAlerts) EvalProvisional(originatingUser models.Handle) {
	u.state.provisional = false

	buffered := u.provisionals
	u.provisionals = nil

	for _, a := range buffered {
		if u.eligible(a, originatingUser) {
			u.Add(a)
			continue
		}
		u.logger.Debug("Discarding provisional user alert",
			"id", a.Common().ID,
			"type", a.Common().Type,
			"originating_user", originatingUser)
	}
}

// eligible decides whether a provisional alert may be committed.
func (u *UserAlerts) eligible(a models.Alert, originatingUser models.Handle) bool {
	switch a.(type) {
	case *models.ContactChange:
		// не уведомляем пользователя о его собственных действиях
		return originatingUser != u.me
	default:
		return true
	}
}

// Alerts returns the committed log in commit order.
func (u *UserAlerts) Alerts() []models.Alert {
	out := make([]models.Alert, 0, len(u.alerts))
	for _, id := range u.alerts {
		out = append(out, u.byID[id])
	}
	return out
}

// Alert returns a committed alert by id.
func (u *UserAlerts) Alert(id uint32) (models.Alert, bool) {
	a, ok := u.byID[id]
	return a, ok
}

// Len returns the number of committed alerts.
func (u *UserAlerts) Len() int {
	return len(u.alerts)
}

// Notifications returns the alerts queued for delivery without consuming them.
func (u *UserAlerts) Notifications() []models.Alert {
	out := make([]models.Alert, 0, len(u.notify))
	for _, id := range u.notify {
		if a, ok := u.byID[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// TakeNotifications returns the queued alerts and empties the queue.
func (u *UserAlerts) TakeNotifications() []models.Alert {
	out := u.Notifications()
	u.notify = nil
	return out
}

// ProvisionalCount returns the number of buffered provisional alerts.
func (u *UserAlerts) ProvisionalCount() int {
	return len(u.provisionals)
}

// dropAlerts removes the given ids from the arena, the log and the notify queue.
func (u *UserAlerts) dropAlerts(ids map[uint32]struct{}) {
	if len(ids) == 0 {
		return
	}
	for id := range ids {
		delete(u.byID, id)
	}
	u.alerts = withoutIDs(u.alerts, ids)
	u.notify = withoutIDs(u.notify, ids)
}

func withoutIDs(list []uint32, ids map[uint32]struct{}) []uint32 {
	out := list[:0]
	for _, id := range list {
		if _, drop := ids[id]; !drop {
			out = append(out, id)
		}
	}
	return out
}
