package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/anydocs"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ anydocs.DocSetService = (*DocSetService)(nil)

const docSetColumns = "id, name, source_url, local_path, fingerprint, pages, sections, created_at, updated_at"

// DocSetService implements anydocs.DocSetService using SQLite.
type DocSetService struct {
	db *DB
}

// NewDocSetService creates a new DocSetService.
func NewDocSetService(db *DB) *DocSetService {
	return &DocSetService{db: db}
}

// CreateDocSet registers a new doc set.
func (s *DocSetService) CreateDocSet(ctx context.Context, set *anydocs.DocSet) error {
	if err := set.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM docsets WHERE name = ?", set.Name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return anydocs.Errorf(anydocs.ECONFLICT, "doc set %q already exists", set.Name)
	}

	set.ID = uuid.New().String()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO docsets (`+docSetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, set.ID, set.Name, set.SourceURL, set.LocalPath, set.Fingerprint, set.Pages, set.Sections,
		set.CreatedAt.Format(time.RFC3339), set.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindDocSetByID retrieves a doc set by ID.
func (s *DocSetService) FindDocSetByID(ctx context.Context, id string) (*anydocs.DocSet, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+docSetColumns+" FROM docsets WHERE id = ?", id)
	set, err := scanDocSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, anydocs.Errorf(anydocs.ENOTFOUND, "doc set not found")
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// FindDocSets retrieves doc sets matching the filter, ordered by name.
func (s *DocSetService) FindDocSets(ctx context.Context, filter anydocs.DocSetFilter) ([]*anydocs.DocSet, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + docSetColumns + " FROM docsets WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means unbounded.
		if filter.Limit <= 0 {
			query.WriteString(" LIMIT -1")
		}
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*anydocs.DocSet
	for rows.Next() {
		set, err := scanDocSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}

	return sets, rows.Err()
}

// UpdateDocSet updates an existing doc set.
func (s *DocSetService) UpdateDocSet(ctx context.Context, id string, upd anydocs.DocSetUpdate) (*anydocs.DocSet, error) {
	set, err := s.FindDocSetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.SourceURL != nil {
		set.SourceURL = *upd.SourceURL
	}
	if upd.LocalPath != nil {
		set.LocalPath = *upd.LocalPath
	}
	if upd.Fingerprint != nil {
		set.Fingerprint = *upd.Fingerprint
	}
	if upd.Pages != nil {
		set.Pages = *upd.Pages
	}
	if upd.Sections != nil {
		set.Sections = *upd.Sections
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	set.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE docsets
		SET source_url = ?, local_path = ?, fingerprint = ?, pages = ?, sections = ?, updated_at = ?
		WHERE id = ?
	`, set.SourceURL, set.LocalPath, set.Fingerprint, set.Pages, set.Sections,
		set.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return set, nil
}

// DeleteDocSet removes a doc set registration. Files on disk are untouched.
func (s *DocSetService) DeleteDocSet(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM docsets WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return anydocs.Errorf(anydocs.ENOTFOUND, "doc set not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocSet(row scanner) (*anydocs.DocSet, error) {
	var set anydocs.DocSet
	var createdAt, updatedAt string

	if err := row.Scan(&set.ID, &set.Name, &set.SourceURL, &set.LocalPath, &set.Fingerprint,
		&set.Pages, &set.Sections, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if set.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("docset %s: created_at: %w", set.Name, err)
	}
	if set.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("docset %s: updated_at: %w", set.Name, err)
	}
	return &set, nil
}
