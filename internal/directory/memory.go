package directory

import (
	"github.com/iudanet/cloudalerts/internal/models"
)

// Memory is an in-memory Directory. It is not safe for concurrent writers.
type Memory struct {
	users map[models.Handle]models.User
	nodes map[models.Handle]models.Node
}

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{
		users: make(map[models.Handle]models.User),
		nodes: make(map[models.Handle]models.Node),
	}
}

// PutUser adds or replaces a user.
func (m *Memory) PutUser(u models.User) {
	m.users[u.Handle] = u
}

// PutNode adds or replaces a node.
func (m *Memory) PutNode(n models.Node) {
	m.nodes[n.Handle] = n
}

// DeleteNode forgets a node.
func (m *Memory) DeleteNode(h models.Handle) {
	delete(m.nodes, h)
}

// UserEmail implements Directory.
func (m *Memory) UserEmail(h models.Handle) (string, bool) {
	u, ok := m.users[h]
	if !ok {
		return "", false
	}
	return u.Email, true
}

// Node implements Directory.
func (m *Memory) Node(h models.Handle) (models.Node, bool) {
	n, ok := m.nodes[h]
	return n, ok
}

var _ Directory = (*Memory)(nil)
