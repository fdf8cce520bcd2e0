// Package directory provides the read-only user and node lookups the alert
// engine uses to resolve emails and display paths.
package directory

import (
	"strings"

	"github.com/iudanet/cloudalerts/internal/models"
)

// maxDepth bounds parent walks so a corrupted tree cannot loop forever.
const maxDepth = 256

// Directory resolves users and nodes. A miss is reported with ok == false.
type Directory interface {
	// UserEmail returns the email of a known user
	UserEmail(h models.Handle) (string, bool)

	// Node returns the node with the given handle
	Node(h models.Handle) (models.Node, bool)
}

// DisplayPath builds the slash separated path of a node by walking its
// parents. Paths under a root node start with "/". Unknown nodes give "".
func DisplayPath(d Directory, h models.Handle) string {
	var names []string
	absolute := false

	for i := 0; i < maxDepth && !h.IsUndef(); i++ {
		n, ok := d.Node(h)
		if !ok {
			break
		}
		if n.Kind == models.RootNode {
			absolute = true
			break
		}
		names = append(names, n.Name)
		h = n.Parent
	}

	if len(names) == 0 {
		if absolute {
			return "/"
		}
		return ""
	}

	// Разворачиваем: собирали от узла к корню
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}

	path := strings.Join(names, "/")
	if absolute {
		return "/" + path
	}
	return path
}

// IsUnder reports whether n or one of its ancestors has the handle ancestor.
func IsUnder(d Directory, n *models.Node, ancestor models.Handle) bool {
	if n == nil {
		return false
	}
	cur := *n
	for i := 0; i < maxDepth; i++ {
		if cur.Handle == ancestor {
			return true
		}
		if cur.Parent.IsUndef() {
			return false
		}
		next, ok := d.Node(cur.Parent)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}
