package useralerts

import "github.com/iudanet/cloudalerts/internal/models"

// IsUnwantedAlert reports whether a record of type t must be dropped under
// the current category flags. action is the raw "c" field of the record, -1
// when absent, so records without an action code are not filtered by it.
func (u *UserAlerts) IsUnwantedAlert(t models.AlertType, action int) bool {
	f := u.flags

	switch t {
	case models.TypeNewSharedNodes, models.TypeNewShare, models.TypeDeletedShare:
		if !f.CloudEnabled {
			return true
		}
	case models.TypeContactChange, models.TypeIncomingPendingContact,
		models.TypeUpdatedPendingContactIncoming, models.TypeUpdatedPendingContactOutgoing:
		if !f.ContactsEnabled {
			return true
		}
	}

	switch t {
	case models.TypeNewSharedNodes:
		return !f.CloudNewFiles
	case models.TypeNewShare:
		return !f.CloudNewShare
	case models.TypeDeletedShare:
		return !f.CloudDelShare
	case models.TypeIncomingPendingContact:
		return !f.ContactsFcrIn
	case models.TypeContactChange:
		return (action == -1 || action == models.ContactDeleted) && !f.ContactsFcrDel
	case models.TypeUpdatedPendingContactOutgoing:
		return (action == -1 || action == 2) && !f.ContactsFcrAcpt
	}

	return false
}
