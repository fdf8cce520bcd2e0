package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	// Используем in-memory database для тестов
	s, err := New(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.GetUser(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.PutUser(ctx, models.User{Handle: 7, Email: "bob@example.com"}))
	u, err := s.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)

	require.NoError(t, s.PutUser(ctx, models.User{Handle: 7, Email: "robert@example.com"}))
	u, err = s.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "robert@example.com", u.Email)
}

func TestStorage_Nodes(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	nodes := []models.Node{
		{Handle: 1, Parent: models.Undef, Kind: models.RootNode},
		{Handle: 10, Parent: 1, Name: "share", Kind: models.FolderNode},
		{Handle: 101, Parent: 10, Name: "b.txt", Kind: models.FileNode},
		{Handle: 100, Parent: 10, Name: "a.txt", Kind: models.FileNode},
	}
	for _, n := range nodes {
		require.NoError(t, s.PutNode(ctx, n))
	}

	root, err := s.GetNode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, nodes[0], root)
	assert.True(t, root.Parent.IsUndef())

	children, err := s.Children(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.Handle{100, 101}, children)

	require.NoError(t, s.DeleteNode(ctx, 100))
	require.NoError(t, s.DeleteNode(ctx, 100))
	_, err = s.GetNode(ctx, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_View(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.PutUser(ctx, models.User{Handle: 7, Email: "bob@example.com"}))
	require.NoError(t, s.PutNode(ctx, models.Node{Handle: 1, Parent: models.Undef, Kind: models.RootNode}))
	require.NoError(t, s.PutNode(ctx, models.Node{Handle: 10, Parent: 1, Name: "share", Kind: models.FolderNode}))
	require.NoError(t, s.PutNode(ctx, models.Node{Handle: 100, Parent: 10, Name: "a.txt", Kind: models.FileNode}))

	d := s.View(ctx)

	email, ok := d.UserEmail(7)
	assert.True(t, ok)
	assert.Equal(t, "bob@example.com", email)

	_, ok = d.UserEmail(8)
	assert.False(t, ok)

	assert.Equal(t, "/share/a.txt", directory.DisplayPath(d, 100))
	n, ok := d.Node(100)
	require.True(t, ok)
	assert.True(t, directory.IsUnder(d, &n, 10))
	assert.False(t, directory.IsUnder(d, &n, 11))
}

func TestNew_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "directory.db")

	s, err := New(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, s.PutUser(ctx, models.User{Handle: 7, Email: "bob@example.com"}))
	require.NoError(t, s.Close())

	// миграции повторно не применяются, данные на месте
	s, err = New(ctx, path, nil)
	require.NoError(t, err)
	defer s.Close()

	u, err := s.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
}
