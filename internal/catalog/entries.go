package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shortcast/internal/project"
)

// Entry is one catalog row describing a persisted project.
type Entry struct {
	ID             string
	Name           string
	ProductName    string
	Status         project.Status
	FilePath       string
	FinalVideoPath string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ErrNotFound indicates the requested project id has no catalog row.
var ErrNotFound = errors.New("project not found in catalog")

// Upsert records or refreshes the catalog row for a project whose document
// lives at filePath.
func (s *Store) Upsert(ctx context.Context, p *project.Project, filePath string) error {
	if p == nil {
		return errors.New("upsert: nil project")
	}
	err := s.execWithRetry(
		ctx,
		`INSERT INTO projects (
            id, name, product_name, status, file_path, final_video_path, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            product_name = excluded.product_name,
            status = excluded.status,
            file_path = excluded.file_path,
            final_video_path = excluded.final_video_path,
            updated_at = excluded.updated_at`,
		p.ID,
		p.Name,
		p.ProductName,
		string(p.Status),
		filePath,
		p.FinalVideoPath,
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
		p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert project %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the catalog entry for a project id.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, product_name, status, file_path, final_video_path, created_at, updated_at
         FROM projects WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return entry, nil
}

// List returns catalog entries ordered by most recent update. A non-empty
// status filters the result.
func (s *Store) List(ctx context.Context, status project.Status) ([]*Entry, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, name, product_name, status, file_path, final_video_path, created_at, updated_at
              FROM projects`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return entries, nil
}

// Remove deletes the catalog row for a project id. Removing an absent id is
// not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.execWithRetry(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("remove project %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry     Entry
		status    string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.ProductName,
		&status,
		&entry.FilePath,
		&entry.FinalVideoPath,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	parsed, ok := project.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	entry.Status = parsed

	var err error
	if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if entry.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &entry, nil
}
