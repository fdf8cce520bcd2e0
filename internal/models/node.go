package models

// NodeKind is the type of a node in the cloud drive tree.
type NodeKind int

const (
	UnknownNode  NodeKind = -1
	FileNode     NodeKind = 0
	FolderNode   NodeKind = 1
	RootNode     NodeKind = 2
	IncomingNode NodeKind = 3
	RubbishNode  NodeKind = 4
)

// Node is the read-only view of a cloud drive node the alert engine needs.
type Node struct {
	Name   string   `json:"name"`   // Name отображаемое имя узла
	Handle Handle   `json:"handle"` // Handle идентификатор узла
	Parent Handle   `json:"parent"` // Parent handle родителя (Undef для корня)
	Kind   NodeKind `json:"kind"`   // Kind файл или папка
}

// User is a directory record for a known account.
type User struct {
	Email  string `json:"email"`
	Handle Handle `json:"handle"`
}
