package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"scrub/internal/modules/session/domain"
	sessionout "scrub/internal/modules/session/port/out"
	"scrub/internal/platform/markdown"
	"scrub/internal/platform/slug"
)

type ReportNoteStore struct {
	notesPath string
}

func NewReportNoteStore(notesPath string) sessionout.ReportStore {
	return &ReportNoteStore{notesPath: notesPath}
}

func (s *ReportNoteStore) Save(_ context.Context, session domain.Session, areaName string) (string, error) {
	date := session.CreatedAt
	dir := filepath.Join(s.notesPath, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(areaName))
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"schema_version":   domain.SchemaVersion,
		"id":               session.ID,
		"area_id":          session.AreaID,
		"created_at":       session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		"completed_at":     session.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
		"tier":             string(session.Verification.Tier),
		"outcome":          string(session.Verification.Outcome),
		"base_points":      session.BasePoints,
		"bonus_multiplier": session.BonusMultiplier,
		"total_points":     session.TotalPoints,
	}
	body := fmt.Sprintf("# Cleaning session %s\n\n- Area: %s\n- Points: %.1f (base %d)\n\n## Tasks\n\n", session.ID, areaName, session.TotalPoints, session.BasePoints)
	for _, task := range session.Tasks {
		mark := " "
		if task.Completed() {
			mark = "x"
		}
		body += fmt.Sprintf("- [%s] %s (%d)\n", mark, task.Title, task.Points)
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session report: %w", err)
	}
	return path, nil
}
