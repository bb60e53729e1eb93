package out_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	adapter "scrub/internal/modules/session/adapter/out"
	"scrub/internal/modules/session/domain"
	apperrors "scrub/internal/platform/errors"
)

func newStore(t *testing.T) *adapter.SQLiteSessionStore {
	t.Helper()
	db, err := adapter.OpenDB(filepath.Join(t.TempDir(), "scrub.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := adapter.NewSQLiteSessionStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	session := domain.NewSession("s1", "kitchen", "photos/kitchen/before.jpg", "assets/visions/chef.png", now)
	session.AddTasks([]domain.Task{{ID: "t1", Title: "Wipe counters", Points: 10}})
	if _, _, err := session.CompleteTask("t1", now.Add(time.Minute)); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	session.RequestVerification(now.Add(2 * time.Minute))
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Latest(ctx, "kitchen")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !got.Verification.Requested || got.Verification.Outcome != domain.OutcomePending {
		t.Fatalf("verification flags lost: %+v", got.Verification)
	}
	if got.BasePoints != 10 || got.TotalPoints != 10 {
		t.Fatalf("points lost: base=%d total=%.1f", got.BasePoints, got.TotalPoints)
	}
	if len(got.Tasks) != 1 || !got.Tasks[0].Completed() {
		t.Fatalf("tasks lost: %+v", got.Tasks)
	}
	if !got.CompletedAt.Equal(now.Add(time.Minute)) {
		t.Fatalf("completed_at = %v", got.CompletedAt)
	}

	session.ApplyVerdict(domain.TierBlue, true, "photos/kitchen/after.jpg", now.Add(3*time.Minute))
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save verdict: %v", err)
	}
	got, err = store.Latest(ctx, "kitchen")
	if err != nil {
		t.Fatalf("latest after verdict: %v", err)
	}
	if got.Verification.Outcome != domain.OutcomePassed || got.TotalPoints != 15 {
		t.Fatalf("verdict lost: outcome=%s total=%.1f", got.Verification.Outcome, got.TotalPoints)
	}
	if got.AfterPhoto != "photos/kitchen/after.jpg" {
		t.Fatalf("after photo = %q", got.AfterPhoto)
	}
}

func TestSessionStoreLatestWithoutSessions(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	_, err := store.Latest(context.Background(), "ghost")
	if !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSessionStoreLastPassedVerification(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	if _, ok, err := store.LastPassedVerification(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%t err=%v", ok, err)
	}

	session := domain.NewSession("s1", "kitchen", "photos/kitchen/before.jpg", "", now)
	session.AddTasks([]domain.Task{{ID: "t1", Title: "Wipe counters", Points: 10}})
	if _, _, err := session.CompleteTask("t1", now); err != nil {
		t.Fatalf("complete task: %v", err)
	}
	session.ApplyVerdict(domain.TierGolden, true, "", now.Add(time.Hour))
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	at, ok, err := store.LastPassedVerification(ctx)
	if err != nil {
		t.Fatalf("last passed: %v", err)
	}
	if !ok || !at.Equal(now.Add(time.Hour)) {
		t.Fatalf("ok=%t at=%v", ok, at)
	}
}

func TestSessionStoreCountCompletedOn(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{time.Hour, 2 * time.Hour, 25 * time.Hour} {
		id := string(rune('a' + i))
		session := domain.NewSession(id, "kitchen", "photos/kitchen/before.jpg", "", day)
		session.AddTasks([]domain.Task{{ID: id + "-t", Title: "Sweep floor", Points: 5}})
		if _, _, err := session.CompleteTask(id+"-t", day.Add(offset)); err != nil {
			t.Fatalf("complete task: %v", err)
		}
		if err := store.Save(ctx, session); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	count, err := store.CountCompletedOn(ctx, day)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}
