package cookbookdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// UpsertImportAudit records the outcome of importing rec.URL. If an audit
// row already exists for the URL it is updated in place, so re-running a
// batch refines the audit trail instead of duplicating it.
func (s *Store) UpsertImportAudit(ctx context.Context, rec *ImportRecord) error {
	errs, err := json.Marshal(rec.Errors)
	if err != nil {
		return fmt.Errorf("cookbookdb: encode import errors: %w", err)
	}
	if rec.Errors == nil {
		errs = []byte("[]")
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
INSERT INTO recipe_imports (url, title, status, errors, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
  title = excluded.title,
  status = excluded.status,
  errors = excluded.errors,
  updated_at = excluded.updated_at`,
		rec.URL, rec.Title, string(rec.Status), string(errs), now, now)
	if err != nil {
		return fmt.Errorf("cookbookdb: upsert import audit: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		rec.ID = id
	}
	rec.UpdatedAt = now
	return nil
}

// GetImport returns one audit row, or ErrNotFound.
func (s *Store) GetImport(ctx context.Context, id int64) (*ImportRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, url, title, status, errors, created_at, updated_at
FROM recipe_imports WHERE id = ?`, id)
	rec, err := scanImport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cookbookdb: get import: %w", err)
	}
	return rec, nil
}

// FindImportByURL returns the audit row for url, or ErrNotFound.
func (s *Store) FindImportByURL(ctx context.Context, url string) (*ImportRecord, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, url, title, status, errors, created_at, updated_at
FROM recipe_imports WHERE url = ?`, url)
	rec, err := scanImport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cookbookdb: find import by url: %w", err)
	}
	return rec, nil
}

// ListImports returns a page of audit rows, oldest first. status and term
// filters are optional; term matches url or title case-insensitively.
func (s *Store) ListImports(ctx context.Context, status, term string, page, take int) ([]*ImportRecord, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, url, title, status, errors, created_at, updated_at
FROM recipe_imports
WHERE (? = '' OR status = ?)
  AND (? = '' OR title LIKE '%' || ? || '%' COLLATE NOCASE OR url LIKE '%' || ? || '%' COLLATE NOCASE)
ORDER BY created_at ASC, id ASC
LIMIT ? OFFSET ?`,
		status, status, term, term, term, take, (page-1)*take)
	if err != nil {
		return nil, fmt.Errorf("cookbookdb: list imports: %w", err)
	}
	defer rows.Close()

	var out []*ImportRecord
	for rows.Next() {
		rec, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("cookbookdb: list imports: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountImports counts audit rows matching the same filters as ListImports.
func (s *Store) CountImports(ctx context.Context, status, term string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM recipe_imports
WHERE (? = '' OR status = ?)
  AND (? = '' OR title LIKE '%' || ? || '%' COLLATE NOCASE OR url LIKE '%' || ? || '%' COLLATE NOCASE)`,
		status, status, term, term, term).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("cookbookdb: count imports: %w", err)
	}
	return count, nil
}

// RejectImport marks an audit row as rejected. Returns ErrNotFound when no
// row has the given id.
func (s *Store) RejectImport(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE recipe_imports SET status = ?, updated_at = ? WHERE id = ?`,
		string(ImportStatusRejected), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("cookbookdb: reject import: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cookbookdb: reject import: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanImport(row rowScanner) (*ImportRecord, error) {
	var rec ImportRecord
	var errs string
	if err := row.Scan(&rec.ID, &rec.URL, &rec.Title, &rec.Status, &errs,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(errs), &rec.Errors); err != nil {
		return nil, err
	}
	return &rec, nil
}
