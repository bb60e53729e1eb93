package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scrub/internal/modules/session/domain"
	sessionout "scrub/internal/modules/session/port/out"
	"scrub/internal/platform/clock"
)

// FileEventLog appends analytics events as one JSON object per line. It
// doubles as the default progression hook: bonus awards are just another
// event kind in the same log.
type FileEventLog struct {
	path  string
	clock clock.Clock
}

func NewFileEventLog(path string, clk clock.Clock) *FileEventLog {
	return &FileEventLog{path: path, clock: clk}
}

func (s *FileEventLog) Record(_ context.Context, event domain.CompletionEvent) error {
	return s.append(event)
}

func (s *FileEventLog) AwardBonus(_ context.Context, areaID string) error {
	return s.append(map[string]any{
		"kind":        "bonus_awarded",
		"area_id":     areaID,
		"occurred_at": s.clock.Now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (s *FileEventLog) append(event any) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create event log dir: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer file.Close()
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if _, err := file.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	return nil
}

var (
	_ sessionout.AnalyticsSink   = (*FileEventLog)(nil)
	_ sessionout.ProgressionHook = (*FileEventLog)(nil)
)
