package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scrub/internal/modules/area/domain"
	areaout "scrub/internal/modules/area/port/out"
	apperrors "scrub/internal/platform/errors"
	"scrub/internal/platform/tx"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteAreaStore struct {
	db *sql.DB
}

func NewSQLiteAreaStore(db *sql.DB) (areaout.AreaStore, error) {
	store := &SQLiteAreaStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteAreaStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS areas (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  icon TEXT,
  color TEXT,
  persona TEXT NOT NULL,
  first_vision_path TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create areas table: %w", err)
	}
	return nil
}

func (s *SQLiteAreaStore) Save(ctx context.Context, area domain.Area) error {
	const stmt = `
INSERT INTO areas (id, name, icon, color, persona, first_vision_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  icon=excluded.icon,
  color=excluded.color,
  persona=excluded.persona,
  first_vision_path=excluded.first_vision_path,
  updated_at=excluded.updated_at;
`
	_, err := tx.Q(ctx, s.db).ExecContext(ctx, stmt,
		area.ID,
		area.Name,
		area.Icon,
		area.Color,
		string(area.Persona),
		area.FirstVisionPath,
		area.CreatedAt.Format(timeLayout),
		area.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert area: %w", err)
	}
	return nil
}

func (s *SQLiteAreaStore) Get(ctx context.Context, id string) (domain.Area, error) {
	const stmt = `
SELECT id, name, icon, color, persona, first_vision_path, created_at, updated_at
FROM areas WHERE id = ?;
`
	row := tx.Q(ctx, s.db).QueryRowContext(ctx, stmt, id)
	area, err := scanArea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Area{}, fmt.Errorf("area %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return domain.Area{}, fmt.Errorf("get area: %w", err)
	}
	return area, nil
}

func (s *SQLiteAreaStore) List(ctx context.Context) ([]domain.Area, error) {
	const stmt = `
SELECT id, name, icon, color, persona, first_vision_path, created_at, updated_at
FROM areas ORDER BY created_at;
`
	rows, err := tx.Q(ctx, s.db).QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()

	areas := []domain.Area{}
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("scan area: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	return areas, nil
}

// Delete cascades through the area's sessions and tasks so no orphan rows
// survive. Callers wrap it in a transaction.
func (s *SQLiteAreaStore) Delete(ctx context.Context, id string) error {
	q := tx.Q(ctx, s.db)
	if _, err := q.ExecContext(ctx, `DELETE FROM tasks WHERE session_id IN (SELECT id FROM sessions WHERE area_id = ?)`, id); err != nil {
		return fmt.Errorf("delete area tasks: %w", err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE area_id = ?`, id); err != nil {
		return fmt.Errorf("delete area sessions: %w", err)
	}
	if _, err := q.ExecContext(ctx, `DELETE FROM areas WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArea(row rowScanner) (domain.Area, error) {
	var area domain.Area
	var persona, createdAt, updatedAt string
	if err := row.Scan(&area.ID, &area.Name, &area.Icon, &area.Color, &persona, &area.FirstVisionPath, &createdAt, &updatedAt); err != nil {
		return domain.Area{}, err
	}
	area.Persona = domain.Persona(persona)
	if err := area.Persona.Validate(); err != nil {
		return domain.Area{}, err
	}
	var err error
	if area.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Area{}, fmt.Errorf("parse created_at: %w", err)
	}
	if area.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return domain.Area{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return area, nil
}
