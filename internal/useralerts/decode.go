package useralerts

import (
	"github.com/iudanet/cloudalerts/internal/models"
	"github.com/iudanet/cloudalerts/pkg/api"
)

// baseFromRaw fills the shared fields from a wire record.
func baseFromRaw(raw *api.RawAlert, id uint32, now int64) models.Base {
	f := raw.Fields
	return models.NewBase(
		raw.Type,
		f.Handle("u", models.UserHandleSize, models.Undef),
		f.String("m", ""),
		now-f.Int64("td", 0),
		id,
	)
}

// alertFromRaw builds the variant matching raw.Type. Unknown types give nil.
func alertFromRaw(raw *api.RawAlert, id uint32, now int64) models.Alert {
	f := raw.Fields

	switch raw.Type {
	case models.TypeIncomingPendingContact:
		a := &models.IncomingPendingContact{Base: baseFromRaw(raw, id, now)}
		a.PcrHandle = f.Handle("p", models.PCRHandleSize, models.Undef)
		// handle запроса используется как handle пользователя (обратная совместимость)
		a.UserHandle = a.PcrHandle
		a.InitTimestamps(f.Int64("dts", 0), f.Int64("rts", 0))
		return a

	case models.TypeContactChange:
		a := &models.ContactChange{Base: baseFromRaw(raw, id, now)}
		a.Action = f.Int("c", -1)
		a.Relevant = models.ContactChangeRelevant(a.Action)
		a.OtherUserHandle = f.Handle("ou", models.UserHandleSize, models.Undef)
		return a

	case models.TypeUpdatedPendingContactIncoming:
		a := &models.UpdatedPendingContactIncoming{Base: baseFromRaw(raw, id, now)}
		a.Action = f.Int("s", -1)
		a.Relevant = models.IncomingUpdateRelevant(a.Action)
		return a

	case models.TypeUpdatedPendingContactOutgoing:
		a := &models.UpdatedPendingContactOutgoing{Base: baseFromRaw(raw, id, now)}
		a.Action = f.Int("s", -1)
		a.Relevant = models.OutgoingUpdateRelevant(a.Action)
		return a

	case models.TypeNewShare:
		a := &models.NewShare{Base: baseFromRaw(raw, id, now)}
		a.FolderHandle = f.Handle("n", models.NodeHandleSize, models.Undef)
		return a

	case models.TypeDeletedShare:
		a := &models.DeletedShare{Base: baseFromRaw(raw, id, now)}
		a.OwnerHandle = f.Handle("o", models.UserHandleSize, models.Undef)
		a.FolderHandle = f.Handle("n", models.NodeHandleSize, models.Undef)
		return a

	case models.TypeNewSharedNodes:
		a := &models.NewSharedNodes{Base: baseFromRaw(raw, id, now)}
		a.ParentHandle = f.Handle("n", models.NodeHandleSize, models.Undef)

		// Сервер присылает узлы в обратном порядке
		items := f.HandleTypes("f")
		for i := len(items) - 1; i >= 0; i-- {
			switch items[i].Kind {
			case models.FolderNode:
				a.FolderNodeHandles = append(a.FolderNodeHandles, items[i].Handle)
			case models.FileNode:
				a.FileNodeHandles = append(a.FileNodeHandles, items[i].Handle)
			}
		}
		return a

	case models.TypeRemovedSharedNode:
		a := &models.RemovedSharedNode{Base: baseFromRaw(raw, id, now)}
		a.NodeHandles = handlesOf(f.HandleTypes("f"))
		return a

	case models.TypeUpdatedSharedNode:
		a := &models.UpdatedSharedNode{Base: baseFromRaw(raw, id, now)}
		a.NodeHandles = handlesOf(f.HandleTypes("f"))
		return a

	case models.TypePayment:
		a := &models.Payment{Base: baseFromRaw(raw, id, now)}
		a.Success = f.NameID("r", "") == "s"
		a.PlanNumber = f.Int("p", 0)
		return a

	case models.TypePaymentReminder:
		a := &models.PaymentReminder{Base: baseFromRaw(raw, id, now)}
		a.ExpiryTime = f.Int64("ts", a.Timestamp)
		return a

	case models.TypeTakedown:
		a := &models.Takedown{Base: baseFromRaw(raw, id, now)}
		down := f.Int("down", -1)
		a.IsTakedown = down == 1
		a.IsReinstate = down == 0
		a.NodeHandle = f.Handle("h", models.NodeHandleSize, models.Undef)
		a.Relevant = a.IsTakedown || a.IsReinstate
		return a
	}

	return nil
}

func handlesOf(items []api.HandleType) []models.Handle {
	if len(items) == 0 {
		return nil
	}
	out := make([]models.Handle, 0, len(items))
	for _, it := range items {
		out = append(out, it.Handle)
	}
	return out
}

// knownType reports whether the engine can build an alert of type t.
func knownType(t models.AlertType) bool {
	switch t {
	case models.TypeIncomingPendingContact, models.TypeContactChange,
		models.TypeUpdatedPendingContactIncoming, models.TypeUpdatedPendingContactOutgoing,
		models.TypeNewShare, models.TypeDeletedShare,
		models.TypeNewSharedNodes, models.TypeRemovedSharedNode, models.TypeUpdatedSharedNode,
		models.TypePayment, models.TypePaymentReminder, models.TypeTakedown:
		return true
	}
	return false
}
