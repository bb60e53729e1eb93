package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"scrub/internal/modules/session/domain"
	sessionout "scrub/internal/modules/session/port/out"
	apperrors "scrub/internal/platform/errors"
	"scrub/internal/platform/tx"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// OpenDB opens the shared sqlite database. sqlite allows one writer at a
// time; the single-connection cap keeps the single-writer rule honest.
func OpenDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) (*SQLiteSessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  area_id TEXT NOT NULL,
  created_at TEXT NOT NULL,
  completed_at TEXT,
  ver_requested INTEGER NOT NULL DEFAULT 0,
  ver_tier TEXT NOT NULL,
  ver_outcome TEXT NOT NULL,
  ver_requested_at TEXT,
  ver_verified_at TEXT,
  base_points INTEGER NOT NULL DEFAULT 0,
  bonus_multiplier REAL NOT NULL DEFAULT 1,
  total_points REAL NOT NULL DEFAULT 0,
  before_photo TEXT NOT NULL,
  after_photo TEXT NOT NULL DEFAULT '',
  vision_image TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sessions_area ON sessions(area_id, created_at);
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  title TEXT NOT NULL,
  detail TEXT NOT NULL DEFAULT '',
  points INTEGER NOT NULL DEFAULT 0,
  completed_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_tasks_session ON tasks(session_id, position);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session tables: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.Session) error {
	if err := session.Verification.Tier.Validate(); err != nil {
		return err
	}
	if err := session.Verification.Outcome.Validate(); err != nil {
		return err
	}
	q := tx.Q(ctx, s.db)
	const stmt = `
INSERT INTO sessions (id, area_id, created_at, completed_at, ver_requested, ver_tier, ver_outcome,
  ver_requested_at, ver_verified_at, base_points, bonus_multiplier, total_points,
  before_photo, after_photo, vision_image)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  completed_at=excluded.completed_at,
  ver_requested=excluded.ver_requested,
  ver_tier=excluded.ver_tier,
  ver_outcome=excluded.ver_outcome,
  ver_requested_at=excluded.ver_requested_at,
  ver_verified_at=excluded.ver_verified_at,
  base_points=excluded.base_points,
  bonus_multiplier=excluded.bonus_multiplier,
  total_points=excluded.total_points,
  after_photo=excluded.after_photo,
  vision_image=excluded.vision_image;
`
	_, err := q.ExecContext(ctx, stmt,
		session.ID,
		session.AreaID,
		session.CreatedAt.Format(timeLayout),
		nullableTime(session.CompletedAt),
		boolToInt(session.Verification.Requested),
		string(session.Verification.Tier),
		string(session.Verification.Outcome),
		nullableTime(session.Verification.RequestedAt),
		nullableTime(session.Verification.VerifiedAt),
		session.BasePoints,
		session.BonusMultiplier,
		session.TotalPoints,
		session.BeforePhoto,
		session.AfterPhoto,
		session.VisionImage,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	for pos, task := range session.Tasks {
		const taskStmt = `
INSERT INTO tasks (id, session_id, position, title, detail, points, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  position=excluded.position,
  title=excluded.title,
  detail=excluded.detail,
  points=excluded.points,
  completed_at=excluded.completed_at;
`
		_, err := q.ExecContext(ctx, taskStmt,
			task.ID,
			session.ID,
			pos,
			task.Title,
			task.Detail,
			task.Points,
			nullableTime(task.CompletedAt),
		)
		if err != nil {
			return fmt.Errorf("upsert task: %w", err)
		}
	}
	return nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.one(ctx, `WHERE id = ?`, sessionID)
}

func (s *SQLiteSessionStore) Latest(ctx context.Context, areaID string) (domain.Session, error) {
	return s.one(ctx, `WHERE area_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`, areaID)
}

func (s *SQLiteSessionStore) InProgress(ctx context.Context, areaID string) (domain.Session, bool, error) {
	sessions, err := s.ListByArea(ctx, areaID)
	if err != nil {
		return domain.Session{}, false, err
	}
	for _, session := range sessions {
		if session.InProgress() {
			return session, true, nil
		}
	}
	return domain.Session{}, false, nil
}

func (s *SQLiteSessionStore) ListByArea(ctx context.Context, areaID string) ([]domain.Session, error) {
	return s.list(ctx, `WHERE area_id = ? ORDER BY created_at`, areaID)
}

func (s *SQLiteSessionStore) CountCompletedOn(ctx context.Context, day time.Time) (int, error) {
	sessions, err := s.list(ctx, `WHERE completed_at IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, session := range sessions {
		if session.CompletedOn(day) {
			count++
		}
	}
	return count, nil
}

func (s *SQLiteSessionStore) LastPassedVerification(ctx context.Context) (time.Time, bool, error) {
	const stmt = `
SELECT ver_verified_at FROM sessions
WHERE ver_outcome = ? AND ver_verified_at IS NOT NULL
ORDER BY ver_verified_at DESC LIMIT 1;
`
	var raw string
	err := tx.Q(ctx, s.db).QueryRowContext(ctx, stmt, string(domain.OutcomePassed)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last passed verification: %w", err)
	}
	at, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse verified_at: %w", err)
	}
	return at, true, nil
}

func (s *SQLiteSessionStore) one(ctx context.Context, where string, args ...any) (domain.Session, error) {
	sessions, err := s.list(ctx, where, args...)
	if err != nil {
		return domain.Session{}, err
	}
	if len(sessions) == 0 {
		return domain.Session{}, apperrors.ErrNoSession
	}
	return sessions[0], nil
}

func (s *SQLiteSessionStore) list(ctx context.Context, where string, args ...any) ([]domain.Session, error) {
	q := tx.Q(ctx, s.db)
	stmt := `
SELECT id, area_id, created_at, completed_at, ver_requested, ver_tier, ver_outcome,
  ver_requested_at, ver_verified_at, base_points, bonus_multiplier, total_points,
  before_photo, after_photo, vision_image
FROM sessions ` + where + `;`
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	for i := range sessions {
		tasks, err := s.tasksFor(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Tasks = tasks
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) tasksFor(ctx context.Context, sessionID string) ([]domain.Task, error) {
	const stmt = `
SELECT id, title, detail, points, completed_at
FROM tasks WHERE session_id = ? ORDER BY position;
`
	rows, err := tx.Q(ctx, s.db).QueryContext(ctx, stmt, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		var completedAt sql.NullString
		if err := rows.Scan(&task.ID, &task.Title, &task.Detail, &task.Points, &completedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if task.CompletedAt, err = parseNullableTime(completedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

func scanSession(rows *sql.Rows) (domain.Session, error) {
	var session domain.Session
	var createdAt string
	var completedAt, requestedAt, verifiedAt sql.NullString
	var requested int
	var tier, outcome string
	err := rows.Scan(
		&session.ID,
		&session.AreaID,
		&createdAt,
		&completedAt,
		&requested,
		&tier,
		&outcome,
		&requestedAt,
		&verifiedAt,
		&session.BasePoints,
		&session.BonusMultiplier,
		&session.TotalPoints,
		&session.BeforePhoto,
		&session.AfterPhoto,
		&session.VisionImage,
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}

	// Raw strings decode to closed enum types here and nowhere else;
	// unknown values are corruption, not defaults.
	session.Verification.Tier = domain.Tier(tier)
	if err := session.Verification.Tier.Validate(); err != nil {
		return domain.Session{}, err
	}
	session.Verification.Outcome = domain.Outcome(outcome)
	if err := session.Verification.Outcome.Validate(); err != nil {
		return domain.Session{}, err
	}
	session.Verification.Requested = requested != 0

	if session.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Session{}, fmt.Errorf("parse created_at: %w", err)
	}
	if session.CompletedAt, err = parseNullableTime(completedAt); err != nil {
		return domain.Session{}, err
	}
	if session.Verification.RequestedAt, err = parseNullableTime(requestedAt); err != nil {
		return domain.Session{}, err
	}
	if session.Verification.VerifiedAt, err = parseNullableTime(verifiedAt); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}

func parseNullableTime(raw sql.NullString) (time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, raw.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time column: %w", err)
	}
	return t, nil
}

var _ sessionout.SessionStore = (*SQLiteSessionStore)(nil)
