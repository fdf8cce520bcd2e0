package useralerts

import (
	"sort"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
)

// notedKey groups staged node changes by acting user and parent node.
type notedKey struct {
	user   models.Handle
	parent models.Handle
}

// notedEntry is the staging record for one key.
type notedEntry struct {
	files     models.HandleAlertTypes
	folders   models.HandleAlertTypes
	timestamp int64 // самый ранний timestamp в группе
}

func newNotedEntry() *notedEntry {
	return &notedEntry{
		files:   make(models.HandleAlertTypes),
		folders: make(models.HandleAlertTypes),
	}
}

func (e *notedEntry) empty() bool {
	return len(e.files) == 0 && len(e.folders) == 0
}

func (e *notedEntry) contains(h models.Handle) bool {
	_, inFiles := e.files[h]
	_, inFolders := e.folders[h]
	return inFiles || inFolders
}

func (e *notedEntry) notedAsRemoved(h models.Handle) bool {
	return e.files[h] == models.TypeRemovedSharedNode || e.folders[h] == models.TypeRemovedSharedNode
}

// notedNodes is the staging map.
type notedNodes map[notedKey]*notedEntry

// sortedKeys orders keys by user, then parent, so conversions are deterministic.
func (m notedNodes) sortedKeys() []notedKey {
	keys := make([]notedKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].user != keys[j].user {
			return keys[i].user < keys[j].user
		}
		return keys[i].parent < keys[j].parent
	})
	return keys
}

// find returns the first key whose entry references h.
func (m notedNodes) find(h models.Handle) (notedKey, bool) {
	for _, k := range m.sortedKeys() {
		if m[k].contains(h) {
			return k, true
		}
	}
	return notedKey{}, false
}

// removeNode drops n from the entry at k and the entry itself once empty.
func (m notedNodes) removeNode(k notedKey, n *models.Node) {
	e, ok := m[k]
	if !ok {
		return
	}
	switch n.Kind {
	case models.FolderNode:
		delete(e.folders, n.Handle)
	case models.FileNode:
		delete(e.files, n.Handle)
	}
	if e.empty() {
		delete(m, k)
	}
}

// BeginNotingSharedNodes resets staging and starts recording node changes.
func (u *UserAlerts) BeginNotingSharedNodes() {
	u.state.noting = true
	u.noted = make(notedNodes)
}

// IgnoreNextSharedNodesUnder suppresses noting of additions and updates
// below h until the staging is cleared. Removals are always noted.
func (u *UserAlerts) IgnoreNextSharedNodesUnder(h models.Handle) {
	u.state.ignoreUnder = h
}

// NoteSharedNode stages a change of node n made by user. It is effective
// only after catch-up, while noting, and for file or folder nodes.
func (u *UserAlerts) NoteSharedNode(user models.Handle, kind models.NodeKind, ts int64, n *models.Node, alertType models.AlertType) {
	if !u.state.caughtUp() || !u.state.noting || (kind != models.FileNode && kind != models.FolderNode) {
		return
	}

	if !u.state.ignoreUnder.IsUndef() && alertType != models.TypeRemovedSharedNode {
		// узлы внутри только что расшаренной папки не алертим
		if directory.IsUnder(u.dir, n, u.state.ignoreUnder) {
			return
		}
	}

	parent := models.Undef
	if n != nil {
		parent = n.Parent
	}

	key := notedKey{user: user, parent: parent}
	e, ok := u.noted[key]
	if !ok {
		e = newNotedEntry()
		u.noted[key] = e
	}

	if n != nil {
		switch kind {
		case models.FolderNode:
			e.folders[n.Handle] = alertType
		case models.FileNode:
			e.files[n.Handle] = alertType
		}
	}

	if e.timestamp == 0 || (ts != 0 && ts < e.timestamp) {
		e.timestamp = ts
	}
}

// NotedCount returns the number of staging keys.
func (u *UserAlerts) NotedCount() int {
	return len(u.noted)
}

// IsNoting reports whether staging is enabled.
func (u *UserAlerts) IsNoting() bool {
	return u.state.noting
}

func (u *UserAlerts) convertReady(originatingUser models.Handle) bool {
	return u.state.caughtUp() && u.state.noting && originatingUser != u.me
}

// ConvertNotedSharedNodes turns the staged entries into NewSharedNodes
// (added) or RemovedSharedNode alerts, unless the change was made by the
// local account. Staging is cleared in every case.
func (u *UserAlerts) ConvertNotedSharedNodes(added bool, originatingUser models.Handle) {
	if u.convertReady(originatingUser) {
		u.convertNoted(added)
	}
	u.clearNoted()
}

func (u *UserAlerts) convertNoted(added bool) {
	for _, k := range u.noted.sortedKeys() {
		e := u.noted[k]
		if added {
			u.Add(models.NewSharedNodesAlert(k.user, k.parent, e.timestamp, u.NextID(), e.files, e.folders))
		} else {
			u.Add(models.NewRemovedSharedNode(k.user, u.now(), u.NextID(), e.files, e.folders))
		}
	}
}

func (u *UserAlerts) clearNoted() {
	u.noted = make(notedNodes)
	u.state.noting = false
	u.state.ignoreUnder = models.Undef
}

// StashDeletedNotedSharedNodes moves the staged removals aside until
// ConvertStashedDeletedSharedNodes, unless the local account removed them.
func (u *UserAlerts) StashDeletedNotedSharedNodes(originatingUser models.Handle) {
	if u.convertReady(originatingUser) {
		u.stash = u.noted
		u.noted = make(notedNodes)
	}
	u.clearNoted()
	u.logger.Debug("Removal noted nodes stashed", "stash_size", len(u.stash))
}

// ConvertStashedDeletedSharedNodes replays the stash as removal alerts and empties it.
func (u *UserAlerts) ConvertStashedDeletedSharedNodes() {
	u.noted = u.stash
	u.stash = make(notedNodes)

	u.convertNoted(false)
	u.clearNoted()
	u.logger.Debug("Stashed removal noted nodes converted to alerts")
}

// IsDeletedSharedNodesStashEmpty reports whether the removal stash is empty.
func (u *UserAlerts) IsDeletedSharedNodesStashEmpty() bool {
	return len(u.stash) == 0
}

// notedAsRemoved reports whether h is staged as removed in the stash or the
// live staging map.
func (u *UserAlerts) notedAsRemoved(h models.Handle) bool {
	return u.notedAsRemovedIn(h, u.stash) || u.notedAsRemovedIn(h, u.noted)
}

func (u *UserAlerts) notedAsRemovedIn(h models.Handle, m notedNodes) bool {
	if !u.state.caughtUp() || !u.state.noting {
		return false
	}
	for _, e := range m {
		if e.notedAsRemoved(h) {
			return true
		}
	}
	return false
}

// removeNotedNodeFrom drops n from the first entry of m referencing it.
func (u *UserAlerts) removeNotedNodeFrom(n *models.Node, m notedNodes) bool {
	if !u.state.caughtUp() || !u.state.noting {
		return false
	}
	k, ok := m.find(n.Handle)
	if !ok {
		return false
	}
	m.removeNode(k, n)
	return true
}

// setNotedNodeToUpdate replaces a staged addition of n by an update alert.
func (u *UserAlerts) setNotedNodeToUpdate(n *models.Node) bool {
	if !u.state.caughtUp() || !u.state.noting || len(u.noted) == 0 {
		return false
	}
	k, ok := u.noted.find(n.Handle)
	if !ok {
		return false
	}

	e := u.noted[k]
	u.Add(models.NewUpdatedSharedNode(k.user, e.timestamp, u.NextID(),
		models.HandleAlertTypes{n.Handle: models.TypeUpdatedSharedNode}, nil))
	u.noted.removeNode(k, n)
	return true
}
