package useralerts

import (
	"fmt"
	"strconv"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
)

const secondsPerDay = 86400

// Text renders the header and title shown to the user for a. The cached
// email is refreshed from the directory first.
func (u *UserAlerts) Text(a models.Alert) (header, title string) {
	u.updateEmail(a)
	b := a.Common()
	header = b.UserEmail

	switch v := a.(type) {
	case *models.IncomingPendingContact:
		switch {
		case v.RequestWasDeleted:
			title = "Cancelled their contact request"
		case v.RequestWasReminded:
			title = "Reminder: You have a contact request"
		default:
			title = "Sent you a contact request"
		}

	case *models.ContactChange:
		switch v.Action {
		case models.ContactDeleted:
			title = "Deleted you as a contact"
		case models.ContactEstablished:
			title = "Contact relationship established"
		case models.ContactAccountDeleted:
			title = "Account has been deleted/deactivated"
		case models.ContactBlocked:
			title = "Blocked you as a contact"
		}

	case *models.UpdatedPendingContactIncoming:
		switch v.Action {
		case 1:
			title = "You ignored a contact request"
		case 2:
			title = "You accepted a contact request"
		case 3:
			title = "You denied a contact request"
		}

	case *models.UpdatedPendingContactOutgoing:
		switch v.Action {
		case 2:
			title = "Accepted your contact request"
		case 3:
			title = "Denied your contact request"
		}

	case *models.NewShare:
		title = "New shared folder"
		if b.UserEmail != "" {
			title = "New shared folder from " + b.UserEmail
		}

	case *models.DeletedShare:
		title = deletedShareTitle(v)

	case *models.NewSharedNodes:
		title = newNodesTitle(v)

	case *models.RemovedSharedNode:
		title = "Removed item from shared folder"
		if n := len(v.NodeHandles); n > 1 {
			title = fmt.Sprintf("Removed %d items from a share", n)
		}

	case *models.UpdatedSharedNode:
		n := len(v.NodeHandles)
		title = fmt.Sprintf("Updated %d item%s in shared folder", n, plural(n))

	case *models.Payment:
		header = "Payment info"
		if v.Success {
			title = fmt.Sprintf("Your payment for the %s plan was received.", v.PlanName())
		} else {
			title = fmt.Sprintf("Your payment for the %s plan was unsuccessful.", v.PlanName())
		}

	case *models.PaymentReminder:
		header = "PRO membership plan expiring soon"
		title = reminderTitle(v.ExpiryTime, u.now())

	case *models.Takedown:
		header, title = u.takedownText(v)

	default:
		title = fmt.Sprintf("notification: type %s time %d user %s seen %t",
			b.Type, b.Timestamp, b.UserHandle, b.Seen)
	}
	return header, title
}

func deletedShareTitle(a *models.DeletedShare) string {
	if a.UserHandle == a.OwnerHandle {
		if a.UserEmail != "" {
			return "Access to folders shared by " + a.UserEmail + " was removed"
		}
		return "Access to folders was removed"
	}
	if a.UserEmail != "" {
		return "User " + a.UserEmail + " has left the shared folder " + a.FolderName
	}
	return "A user has left the shared folder " + a.FolderName
}

func newNodesTitle(a *models.NewSharedNodes) string {
	folders, files := len(a.FolderNodeHandles), len(a.FileNodeHandles)

	var what string
	switch {
	case folders > 0 && files > 0:
		what = countNoun(folders, "folder") + " and " + countNoun(files, "file")
	case folders > 0:
		what = countNoun(folders, "folder")
	case files > 0:
		what = countNoun(files, "file")
	default:
		what = "nothing"
	}

	switch {
	case a.UserEmail != "":
		return a.UserEmail + " added " + what
	case folders+files > 1:
		return what + " have been added"
	default:
		return what + " has been added"
	}
}

func reminderTitle(expiry, now int64) string {
	days := int((expiry - now) / secondsPerDay)
	if expiry < now {
		unit := " days"
		if days == -1 {
			unit = " day"
		}
		return "Your PRO membership plan expired " + strconv.Itoa(-days) + unit + " ago"
	}
	unit := " days."
	if days == 1 {
		unit = " day."
	}
	return "Your PRO membership plan will expire in " + strconv.Itoa(days) + unit
}

func (u *UserAlerts) takedownText(a *models.Takedown) (header, title string) {
	kind := "node"
	var name string
	if n, ok := u.dir.Node(a.NodeHandle); ok {
		switch n.Kind {
		case models.FolderNode:
			kind = "folder"
		case models.FileNode:
			kind = "file"
		}
		name = directory.DisplayPath(u.dir, a.NodeHandle)
	}
	if name == "" {
		name = "handle " + a.NodeHandle.Encode(models.NodeHandleSize)
	}

	switch {
	case a.IsTakedown:
		header = "Takedown notice"
		title = "Your publicly shared " + kind + " (" + name + ") has been taken down."
	case a.IsReinstate:
		header = "Takedown reinstated"
		title = "Your taken down " + kind + " (" + name + ") has been reinstated."
	}
	return header, title
}

func countNoun(n int, noun string) string {
	return strconv.Itoa(n) + " " + noun + plural(n)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
