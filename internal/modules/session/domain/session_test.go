package domain_test

import (
	"testing"
	"time"

	"scrub/internal/modules/session/domain"
)

var day = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newSessionWithTasks(points ...int) domain.Session {
	session := domain.NewSession("s1", "a1", "before.jpg", "vision.png", day)
	tasks := make([]domain.Task, 0, len(points))
	for i, p := range points {
		tasks = append(tasks, domain.Task{ID: taskID(i), Title: "task", Points: p})
	}
	session.AddTasks(tasks)
	return session
}

func taskID(i int) string {
	return string(rune('a' + i))
}

func TestComputeScoringTable(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name       string
		base       int
		tier       domain.Tier
		passed     bool
		total      float64
		multiplier float64
	}{
		{name: "blue passed", base: 10, tier: domain.TierBlue, passed: true, total: 15, multiplier: 1.5},
		{name: "blue failed", base: 10, tier: domain.TierBlue, passed: false, total: 10, multiplier: 1},
		{name: "golden passed", base: 10, tier: domain.TierGolden, passed: true, total: 20, multiplier: 2},
		{name: "golden failed", base: 10, tier: domain.TierGolden, passed: false, total: 12.5, multiplier: 1.25},
		{name: "no tier passed", base: 10, tier: domain.TierNone, passed: true, total: 10, multiplier: 1},
		{name: "zero base golden", base: 0, tier: domain.TierGolden, passed: true, total: 0, multiplier: 1},
		{name: "negative base", base: -5, tier: domain.TierBlue, passed: true, total: 0, multiplier: 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			total, multiplier := domain.Compute(tc.base, tc.tier, tc.passed)
			if total != tc.total || multiplier != tc.multiplier {
				t.Fatalf("Compute(%d, %s, %t) = (%v, %v), want (%v, %v)",
					tc.base, tc.tier, tc.passed, total, multiplier, tc.total, tc.multiplier)
			}
		})
	}
}

func TestGoldenPassedBeatsBluePassed(t *testing.T) {
	t.Parallel()
	blue, _ := domain.Compute(10, domain.TierBlue, true)
	golden, _ := domain.Compute(10, domain.TierGolden, true)
	if blue <= 10 {
		t.Fatalf("blue pass should exceed base, got %v", blue)
	}
	if golden <= blue {
		t.Fatalf("golden pass (%v) should exceed blue pass (%v)", golden, blue)
	}
}

func TestCompleteTaskIdempotent(t *testing.T) {
	t.Parallel()
	session := newSessionWithTasks(10, 20)

	if _, done, err := session.CompleteTask("a", day); err != nil || !done {
		t.Fatalf("first completion: done=%t err=%v", done, err)
	}
	if session.BasePoints != 10 {
		t.Fatalf("base points = %d, want 10", session.BasePoints)
	}

	if _, done, err := session.CompleteTask("a", day.Add(time.Hour)); err != nil || done {
		t.Fatalf("second completion should be a no-op: done=%t err=%v", done, err)
	}
	if session.BasePoints != 10 {
		t.Fatalf("base points changed on repeat completion: %d", session.BasePoints)
	}
}

func TestCompleteTaskUnknownID(t *testing.T) {
	t.Parallel()
	session := newSessionWithTasks(10)
	if _, _, err := session.CompleteTask("missing", day); err == nil {
		t.Fatalf("expected error for unknown task")
	}
}

func TestCompletionStampsExactlyOnce(t *testing.T) {
	t.Parallel()
	session := newSessionWithTasks(10, 20)
	if session.Completed() {
		t.Fatalf("fresh session should not be completed")
	}
	if _, _, err := session.CompleteTask("a", day); err != nil {
		t.Fatalf("complete a: %v", err)
	}
	if !session.CompletedAt.IsZero() {
		t.Fatalf("completion stamped too early")
	}
	finish := day.Add(time.Hour)
	if _, _, err := session.CompleteTask("b", finish); err != nil {
		t.Fatalf("complete b: %v", err)
	}
	if !session.Completed() || !session.CompletedAt.Equal(finish) {
		t.Fatalf("expected completion at %v, got %v", finish, session.CompletedAt)
	}
}

func TestEmptySessionNeverCompleted(t *testing.T) {
	t.Parallel()
	session := domain.NewSession("s1", "a1", "before.jpg", "", day)
	if session.Completed() {
		t.Fatalf("session with zero tasks must not count as completed")
	}
}

func TestAddTasksCap(t *testing.T) {
	t.Parallel()
	session := domain.NewSession("s1", "a1", "before.jpg", "", day)
	tasks := make([]domain.Task, 8)
	for i := range tasks {
		tasks[i] = domain.Task{ID: taskID(i), Title: "task", Points: 5}
	}
	added := session.AddTasks(tasks)
	if added != domain.MaxTasksPerGeneration {
		t.Fatalf("added = %d, want %d", added, domain.MaxTasksPerGeneration)
	}
	if len(session.Tasks) != domain.MaxTasksPerGeneration {
		t.Fatalf("task count = %d, want %d", len(session.Tasks), domain.MaxTasksPerGeneration)
	}
}

func TestPendingRequiresRequested(t *testing.T) {
	t.Parallel()
	session := newSessionWithTasks(10)
	session.RequestVerification(day)
	if session.Verification.Outcome != domain.OutcomePending {
		t.Fatalf("outcome = %s, want pending", session.Verification.Outcome)
	}
	if !session.Verification.Requested {
		t.Fatalf("pending outcome requires requested flag")
	}
	if session.BonusMultiplier != 1 || session.TotalPoints != float64(session.BasePoints) {
		t.Fatalf("pending session must sit at base: total=%v mult=%v", session.TotalPoints, session.BonusMultiplier)
	}
}

func TestApplyVerdictPassedNeverBelowBase(t *testing.T) {
	t.Parallel()
	session := newSessionWithTasks(10)
	if _, _, err := session.CompleteTask("a", day); err != nil {
		t.Fatalf("complete: %v", err)
	}
	session.ApplyVerdict(domain.TierBlue, true, "after.jpg", day.Add(time.Hour))
	if session.Verification.Outcome != domain.OutcomePassed {
		t.Fatalf("outcome = %s, want passed", session.Verification.Outcome)
	}
	if session.TotalPoints < float64(session.BasePoints) {
		t.Fatalf("passed session total (%v) below base (%d)", session.TotalPoints, session.BasePoints)
	}
	if session.AfterPhoto != "after.jpg" {
		t.Fatalf("after photo not attached")
	}
	if session.BonusDelta() != 5 {
		t.Fatalf("bonus delta = %v, want 5", session.BonusDelta())
	}
}

func TestSkipCollapsesToBase(t *testing.T) {
	t.Parallel()
	session := newSessionWithTasks(10)
	if _, _, err := session.CompleteTask("a", day); err != nil {
		t.Fatalf("complete: %v", err)
	}
	session.ApplyVerdict(domain.TierGolden, true, "", day)
	if session.TotalPoints != 20 {
		t.Fatalf("golden pass total = %v, want 20", session.TotalPoints)
	}
	session.SkipVerification()
	if session.Verification.Outcome != domain.OutcomeSkipped || session.Verification.Requested {
		t.Fatalf("skip should clear the ceremony: %+v", session.Verification)
	}
	if session.TotalPoints != 10 || session.BonusMultiplier != 1 {
		t.Fatalf("skip must collapse to base: total=%v mult=%v", session.TotalPoints, session.BonusMultiplier)
	}
}

func TestDecideStartMode(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name           string
		hasFirstVision bool
		hasInProgress  bool
		want           domain.StartMode
	}{
		{name: "first scan", hasFirstVision: false, hasInProgress: false, want: domain.StartModeDreamVision},
		{name: "first scan with stray session", hasFirstVision: false, hasInProgress: true, want: domain.StartModeDreamVision},
		{name: "append to in-progress", hasFirstVision: true, hasInProgress: true, want: domain.StartModeAppendTasks},
		{name: "fresh session", hasFirstVision: true, hasInProgress: false, want: domain.StartModeTasksOnly},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.DecideStartMode(tc.hasFirstVision, tc.hasInProgress); got != tc.want {
				t.Fatalf("DecideStartMode(%t, %t) = %s, want %s", tc.hasFirstVision, tc.hasInProgress, got, tc.want)
			}
		})
	}
}

func TestEnumValidation(t *testing.T) {
	t.Parallel()
	if err := domain.TierGolden.Validate(); err != nil {
		t.Fatalf("validate tier: %v", err)
	}
	if err := domain.Tier("platinum").Validate(); err == nil {
		t.Fatalf("expected invalid tier error")
	}
	if err := domain.OutcomePending.Validate(); err != nil {
		t.Fatalf("validate outcome: %v", err)
	}
	if err := domain.Outcome("maybe").Validate(); err == nil {
		t.Fatalf("expected invalid outcome error")
	}
}
