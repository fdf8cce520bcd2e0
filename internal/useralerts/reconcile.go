package useralerts

import (
	"github.com/iudanet/cloudalerts/internal/models"
)

// removeHandle deletes every occurrence of h and reports whether any was found.
func removeHandle(list []models.Handle, h models.Handle) ([]models.Handle, bool) {
	out := list[:0]
	found := false
	for _, v := range list {
		if v == h {
			found = true
			continue
		}
		out = append(out, v)
	}
	return out, found
}

// eraseFromNewNodes removes h from a NewSharedNodes alert.
func eraseFromNewNodes(a *models.NewSharedNodes, h models.Handle) bool {
	var inFiles, inFolders bool
	a.FileNodeHandles, inFiles = removeHandle(a.FileNodeHandles, h)
	a.FolderNodeHandles, inFolders = removeHandle(a.FolderNodeHandles, h)
	return inFiles || inFolders
}

// RemoveNodeAlerts scrubs a permanently deleted node from the committed log
// (and with it the notify queue), the removal stash and the live staging.
// Alerts left without handles are dropped.
func (u *UserAlerts) RemoveNodeAlerts(n *models.Node) error {
	if n == nil {
		u.logger.Error("Unable to remove alerts for node: nil node passed")
		return ErrNilNode
	}
	h := n.Handle

	drop := make(map[uint32]struct{})
	for _, id := range u.alerts {
		switch a := u.byID[id].(type) {
		case *models.NewSharedNodes:
			if eraseFromNewNodes(a, h) {
				u.logger.Debug("Suppressed alert for node found as new-alert", "node", h, "alert", id)
				if a.IsEmpty() {
					drop[id] = struct{}{}
				}
			}
		case *models.RemovedSharedNode:
			var found bool
			a.NodeHandles, found = removeHandle(a.NodeHandles, h)
			if found {
				u.logger.Debug("Suppressed alert for node found as removal-alert", "node", h, "alert", id)
				if len(a.NodeHandles) == 0 {
					drop[id] = struct{}{}
				}
			}
		}
	}
	u.dropAlerts(drop)

	if u.removeNotedNodeFrom(n, u.stash) {
		u.logger.Debug("Suppressed removal-alert for node in the stash", "node", h)
	}
	if u.removeNotedNodeFrom(n, u.noted) {
		u.logger.Debug("Suppressed new-alert for node in noted nodes", "node", h)
	}
	return nil
}

// SetNewNodeAlertToUpdateNodeAlert turns the "added" record of n into an
// "updated" one. The committed log is checked first (the notify queue only
// references committed alerts), then the live staging; the first tier with
// a match gets the replacement UpdatedSharedNode alert.
func (u *UserAlerts) SetNewNodeAlertToUpdateNodeAlert(n *models.Node) error {
	if n == nil {
		u.logger.Error("Unable to set new-alert to update-alert: nil node passed")
		return ErrNilNode
	}
	h := n.Handle

	type origin struct {
		user models.Handle
		ts   int64
	}
	var matched []origin
	drop := make(map[uint32]struct{})

	for _, id := range u.alerts {
		a, ok := u.byID[id].(*models.NewSharedNodes)
		if !ok || !eraseFromNewNodes(a, h) {
			continue
		}
		matched = append(matched, origin{user: a.UserHandle, ts: a.Timestamp})
		if a.IsEmpty() {
			drop[id] = struct{}{}
		}
		u.logger.Debug("New-alert replaced by update-alert",
			"node", h,
			"alert", id,
			"alert_removed", a.IsEmpty())
	}

	if len(matched) > 0 {
		u.dropAlerts(drop)
		for _, m := range matched {
			u.Add(models.NewUpdatedSharedNode(m.user, m.ts, u.NextID(),
				models.HandleAlertTypes{h: models.TypeUpdatedSharedNode}, nil))
		}
		return nil
	}

	if u.setNotedNodeToUpdate(n) {
		u.logger.Debug("New-alert found in noted nodes replaced by update-alert", "node", h)
	}
	return nil
}

// IsHandleInAlertsAsRemoved reports whether h already appears in a removal
// alert, committed or staged.
func (u *UserAlerts) IsHandleInAlertsAsRemoved(h models.Handle) bool {
	for _, id := range u.alerts {
		a, ok := u.byID[id].(*models.RemovedSharedNode)
		if !ok {
			continue
		}
		for _, v := range a.NodeHandles {
			if v == h {
				u.logger.Debug("Found removal-alert for node in alerts", "node", h, "alert", id)
				return true
			}
		}
	}

	if u.notedAsRemoved(h) {
		u.logger.Debug("Found removal-alert for node in stash or noted nodes", "node", h)
		return true
	}
	return false
}
