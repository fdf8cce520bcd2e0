package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/cloudalerts/internal/directory"
	"github.com/iudanet/cloudalerts/internal/models"
)

// ErrNotFound indicates that a user or node is not in the directory.
var ErrNotFound = errors.New("not found")

// toDB stores a handle as the signed view of the same 64 bits; Undef maps to -1.
func toDB(h models.Handle) int64 {
	return int64(h)
}

func fromDB(v int64) models.Handle {
	return models.Handle(v)
}

func nowUnix() int64 {
	return time.Now().Unix()
}

// PutUser creates or replaces a user record.
func (s *Storage) PutUser(ctx context.Context, u models.User) error {
	query := `
		INSERT INTO users (handle, email, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(handle) DO UPDATE SET email = excluded.email, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, toDB(u.Handle), u.Email, nowUnix()); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUser returns the user record or ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, h models.Handle) (models.User, error) {
	var email string
	err := s.db.QueryRowContext(ctx, `SELECT email FROM users WHERE handle = ?`, toDB(h)).Scan(&email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return models.User{Handle: h, Email: email}, nil
}

// PutNode creates or replaces a node record.
func (s *Storage) PutNode(ctx context.Context, n models.Node) error {
	query := `
		INSERT INTO nodes (handle, parent, name, kind, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(handle) DO UPDATE SET
			parent = excluded.parent,
			name = excluded.name,
			kind = excluded.kind,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		toDB(n.Handle),
		toDB(n.Parent),
		n.Name,
		int(n.Kind),
		nowUnix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save node: %w", err)
	}
	return nil
}

// GetNode returns the node record or ErrNotFound.
func (s *Storage) GetNode(ctx context.Context, h models.Handle) (models.Node, error) {
	var (
		parent int64
		name   string
		kind   int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT parent, name, kind FROM nodes WHERE handle = ?`, toDB(h),
	).Scan(&parent, &name, &kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Node{}, ErrNotFound
		}
		return models.Node{}, fmt.Errorf("failed to get node: %w", err)
	}

	return models.Node{
		Handle: h,
		Parent: fromDB(parent),
		Name:   name,
		Kind:   models.NodeKind(kind),
	}, nil
}

// DeleteNode removes a node record. Deleting a missing node is not an error.
func (s *Storage) DeleteNode(ctx context.Context, h models.Handle) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM nodes WHERE handle = ?`, toDB(h)); err != nil {
		return fmt.Errorf("failed to delete node: %w", err)
	}
	return nil
}

// Children returns the handles of the direct children of parent in ascending order.
func (s *Storage) Children(ctx context.Context, parent models.Handle) ([]models.Handle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT handle FROM nodes WHERE parent = ? ORDER BY handle ASC`, toDB(parent))
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var out []models.Handle
	for rows.Next() {
		var h int64
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		out = append(out, fromDB(h))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate children: %w", err)
	}
	return out, nil
}

// View binds the storage to ctx so it can serve as a directory.Directory.
// Lookup failures other than a miss are logged and reported as a miss.
func (s *Storage) View(ctx context.Context) directory.Directory {
	return &view{ctx: ctx, s: s}
}

type view struct {
	ctx context.Context
	s   *Storage
}

func (v *view) UserEmail(h models.Handle) (string, bool) {
	u, err := v.s.GetUser(v.ctx, h)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			v.s.logger.Error("Directory user lookup failed", "user", h, "error", err)
		}
		return "", false
	}
	return u.Email, true
}

func (v *view) Node(h models.Handle) (models.Node, bool) {
	n, err := v.s.GetNode(v.ctx, h)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			v.s.logger.Error("Directory node lookup failed", "node", h, "error", err)
		}
		return models.Node{}, false
	}
	return n, true
}
