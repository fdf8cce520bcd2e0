package models

import "sort"

// AlertType is the server-side type code of a user alert.
type AlertType string

// AlertType константы для типов уведомлений
const (
	TypeIncomingPendingContact        AlertType = "ipc"
	TypeContactChange                 AlertType = "c"
	TypeUpdatedPendingContactIncoming AlertType = "upci"
	TypeUpdatedPendingContactOutgoing AlertType = "upco"
	TypeNewShare                      AlertType = "share"
	TypeDeletedShare                  AlertType = "dshare"
	TypeNewSharedNodes                AlertType = "put"
	TypeRemovedSharedNode             AlertType = "d"
	TypeUpdatedSharedNode             AlertType = "u"
	TypePayment                       AlertType = "psts"
	TypePaymentReminder               AlertType = "pses"
	TypeTakedown                      AlertType = "ph"
)

// Tag values with a special meaning.
const (
	TagUnset    = -1 // алерт еще не прошел через очередь уведомлений
	TagExternal = 0  // алерт вызван чужим действием
)

// Alert is one of the closed set of user alert variants.
type Alert interface {
	Common() *Base
	alert()
}

// Base holds the fields shared by every alert variant.
type Base struct {
	UserEmail  string    `json:"user_email"` // UserEmail кэшированный email действующего пользователя
	Type       AlertType `json:"type"`       // Type тип уведомления
	Timestamp  int64     `json:"timestamp"`  // Timestamp время события (unix seconds)
	UserHandle Handle    `json:"user"`       // UserHandle действующий пользователь
	Tag        int       `json:"tag"`        // Tag correlation id локальной операции
	ID         uint32    `json:"id"`         // ID монотонный идентификатор в пределах эпохи
	Seen       bool      `json:"seen"`       // Seen алерт просмотрен пользователем
	Relevant   bool      `json:"relevant"`   // Relevant алерт нужно показывать
}

// NewBase returns base fields for a locally synthesized alert.
func NewBase(t AlertType, user Handle, email string, ts int64, id uint32) Base {
	return Base{
		ID:         id,
		Type:       t,
		UserHandle: user,
		UserEmail:  email,
		Timestamp:  ts,
		Relevant:   true,
		Tag:        TagUnset,
	}
}

// Common returns the shared fields.
func (b *Base) Common() *Base { return b }

func (*Base) alert() {}

// IncomingPendingContact is a contact request sent to the local account.
type IncomingPendingContact struct {
	Base
	PcrHandle          Handle `json:"pcr"`
	RequestWasDeleted  bool   `json:"deleted"`
	RequestWasReminded bool   `json:"reminded"`
}

// NewIncomingPendingContact builds the alert. The pcr handle doubles as the
// user handle for compatibility with older servers.
func NewIncomingPendingContact(dts, rts int64, pcr Handle, email string, ts int64, id uint32) *IncomingPendingContact {
	a := &IncomingPendingContact{
		Base:      NewBase(TypeIncomingPendingContact, pcr, email, ts, id),
		PcrHandle: pcr,
	}
	a.InitTimestamps(dts, rts)
	return a
}

// InitTimestamps applies the deleted/reminded times; deletion takes priority.
func (a *IncomingPendingContact) InitTimestamps(dts, rts int64) {
	a.RequestWasDeleted = dts != 0
	a.RequestWasReminded = rts != 0

	if a.RequestWasDeleted {
		a.Timestamp = dts
	} else if a.RequestWasReminded {
		a.Timestamp = rts
	}
}

// Contact change actions.
const (
	ContactDeleted        = 0
	ContactEstablished    = 1
	ContactAccountDeleted = 2
	ContactBlocked        = 3
)

// ContactChange reports a change in the contact relationship.
type ContactChange struct {
	Base
	OtherUserHandle Handle `json:"other_user"`
	Action          int    `json:"action"`
}

// NewContactChange builds a locally synthesized contact change. Like the
// other locally built alerts it is always relevant; ContactChangeRelevant
// only gates records decoded from the wire.
func NewContactChange(action int, user Handle, email string, ts int64, id uint32) *ContactChange {
	return &ContactChange{
		Base:            NewBase(TypeContactChange, user, email, ts, id),
		Action:          action,
		OtherUserHandle: Undef,
	}
}

// ContactChangeRelevant reports whether the action code is a known relationship change.
func ContactChangeRelevant(action int) bool {
	return action >= ContactDeleted && action <= ContactBlocked
}

// UpdatedPendingContactIncoming reports what the local user did with an incoming request.
type UpdatedPendingContactIncoming struct {
	Base
	Action int `json:"action"`
}

// NewUpdatedPendingContactIncoming builds the alert.
func NewUpdatedPendingContactIncoming(action int, user Handle, email string, ts int64, id uint32) *UpdatedPendingContactIncoming {
	return &UpdatedPendingContactIncoming{
		Base:   NewBase(TypeUpdatedPendingContactIncoming, user, email, ts, id),
		Action: action,
	}
}

// IncomingUpdateRelevant covers ignored (1), accepted (2) and denied (3).
func IncomingUpdateRelevant(action int) bool {
	return action >= 1 && action < 4
}

// UpdatedPendingContactOutgoing reports what the peer did with our request.
type UpdatedPendingContactOutgoing struct {
	Base
	Action int `json:"action"`
}

// NewUpdatedPendingContactOutgoing builds the alert.
func NewUpdatedPendingContactOutgoing(action int, user Handle, email string, ts int64, id uint32) *UpdatedPendingContactOutgoing {
	return &UpdatedPendingContactOutgoing{
		Base:   NewBase(TypeUpdatedPendingContactOutgoing, user, email, ts, id),
		Action: action,
	}
}

// OutgoingUpdateRelevant covers accepted (2) and denied (3).
func OutgoingUpdateRelevant(action int) bool {
	return action == 2 || action == 3
}

// NewShare reports a folder newly shared with the local account.
type NewShare struct {
	Base
	FolderHandle Handle `json:"folder"`
}

// NewShareAlert builds the alert.
func NewShareAlert(folder, user Handle, email string, ts int64, id uint32) *NewShare {
	return &NewShare{
		Base:         NewBase(TypeNewShare, user, email, ts, id),
		FolderHandle: folder,
	}
}

// DeletedShare reports that access to a shared folder ended.
type DeletedShare struct {
	Base
	FolderName   string `json:"folder_name"`
	FolderPath   string `json:"folder_path"`
	OwnerHandle  Handle `json:"owner"`
	FolderHandle Handle `json:"folder"`
}

// NewDeletedShare builds the alert.
func NewDeletedShare(user Handle, email string, owner, folder Handle, ts int64, id uint32) *DeletedShare {
	return &DeletedShare{
		Base:         NewBase(TypeDeletedShare, user, email, ts, id),
		OwnerHandle:  owner,
		FolderHandle: folder,
	}
}

// HandleAlertTypes maps a staged node handle to the kind of change noted for it.
type HandleAlertTypes map[Handle]AlertType

// SortedHandles returns the keys in ascending order.
func (m HandleAlertTypes) SortedHandles() []Handle {
	out := make([]Handle, 0, len(m))
	for h := range m {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewSharedNodes reports files and folders added under a shared parent.
// This variant is subject to merging.
type NewSharedNodes struct {
	Base
	FileNodeHandles   []Handle `json:"files"`
	FolderNodeHandles []Handle `json:"folders"`
	ParentHandle      Handle   `json:"parent"`
}

// NewSharedNodesAlert builds the alert from staged handles.
func NewSharedNodesAlert(user, parent Handle, ts int64, id uint32, files, folders HandleAlertTypes) *NewSharedNodes {
	return &NewSharedNodes{
		Base:              NewBase(TypeNewSharedNodes, user, "", ts, id),
		ParentHandle:      parent,
		FileNodeHandles:   files.SortedHandles(),
		FolderNodeHandles: folders.SortedHandles(),
	}
}

// IsEmpty reports whether both handle lists are empty.
func (a *NewSharedNodes) IsEmpty() bool {
	return len(a.FileNodeHandles) == 0 && len(a.FolderNodeHandles) == 0
}

// RemovedSharedNode reports nodes removed from a share.
type RemovedSharedNode struct {
	Base
	NodeHandles []Handle `json:"nodes"`
}

// NewRemovedSharedNode builds the alert; file handles come first.
func NewRemovedSharedNode(user Handle, ts int64, id uint32, files, folders HandleAlertTypes) *RemovedSharedNode {
	return &RemovedSharedNode{
		Base:        NewBase(TypeRemovedSharedNode, user, "", ts, id),
		NodeHandles: append(files.SortedHandles(), folders.SortedHandles()...),
	}
}

// UpdatedSharedNode reports nodes modified inside a share.
type UpdatedSharedNode struct {
	Base
	NodeHandles []Handle `json:"nodes"`
}

// NewUpdatedSharedNode builds the alert; file handles come first.
func NewUpdatedSharedNode(user Handle, ts int64, id uint32, files, folders HandleAlertTypes) *UpdatedSharedNode {
	return &UpdatedSharedNode{
		Base:        NewBase(TypeUpdatedSharedNode, user, "", ts, id),
		NodeHandles: append(files.SortedHandles(), folders.SortedHandles()...),
	}
}

// Payment reports the outcome of a plan purchase.
type Payment struct {
	Base
	PlanNumber int  `json:"plan"`
	Success    bool `json:"success"`
}

// NewPayment builds the alert.
func NewPayment(success bool, plan int, ts int64, id uint32) *Payment {
	return &Payment{
		Base:       NewBase(TypePayment, Undef, "", ts, id),
		Success:    success,
		PlanNumber: plan,
	}
}

// PlanName returns the display name of the purchased plan.
func (a *Payment) PlanName() string {
	switch a.PlanNumber {
	case 1:
		return "PRO I"
	case 2:
		return "PRO II"
	case 3:
		return "PRO III"
	case 4:
		return "PRO LITE"
	default:
		return "FREE"
	}
}

// PaymentReminder warns that the plan is about to expire. It stays relevant
// until a successful payment arrives.
type PaymentReminder struct {
	Base
	ExpiryTime int64 `json:"expiry"`
}

// NewPaymentReminder builds the alert stamped with now.
func NewPaymentReminder(expiry, now int64, id uint32) *PaymentReminder {
	return &PaymentReminder{
		Base:       NewBase(TypePaymentReminder, Undef, "", now, id),
		ExpiryTime: expiry,
	}
}

// Takedown reports a public link taken down or reinstated.
type Takedown struct {
	Base
	NodeHandle  Handle `json:"node"`
	IsTakedown  bool   `json:"takedown"`
	IsReinstate bool   `json:"reinstate"`
}

// NewTakedown builds the alert; it is relevant only when one of the flags is set.
func NewTakedown(down, reinstate bool, node Handle, ts int64, id uint32) *Takedown {
	a := &Takedown{
		Base:        NewBase(TypeTakedown, Undef, "", ts, id),
		IsTakedown:  down,
		IsReinstate: reinstate,
		NodeHandle:  node,
	}
	a.Relevant = down || reinstate
	return a
}
