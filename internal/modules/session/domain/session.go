package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	SchemaVersion = 1

	// MaxTasksPerGeneration caps how many tasks a single scan may add.
	MaxTasksPerGeneration = 5
)

type Tier string

const (
	TierNone   Tier = "none"
	TierBlue   Tier = "blue"
	TierGolden Tier = "golden"
)

func (t Tier) Validate() error {
	switch t {
	case TierNone, TierBlue, TierGolden:
		return nil
	default:
		return fmt.Errorf("unsupported tier %q", string(t))
	}
}

type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

func (o Outcome) Validate() error {
	switch o {
	case OutcomePending, OutcomePassed, OutcomeFailed, OutcomeSkipped:
		return nil
	default:
		return fmt.Errorf("unsupported outcome %q", string(o))
	}
}

// Resolved reports whether the verification flow reached a terminal state.
func (o Outcome) Resolved() bool {
	return o == OutcomePassed || o == OutcomeFailed
}

// StartMode decides how a scan enters the session lifecycle.
type StartMode string

const (
	// StartModeDreamVision creates the area's very first session and its
	// first-impression artifact.
	StartModeDreamVision StartMode = "dream_vision"
	// StartModeAppendTasks adds tasks to the area's in-progress session.
	StartModeAppendTasks StartMode = "append_tasks"
	// StartModeTasksOnly creates a fresh session for an area that already
	// has a first impression.
	StartModeTasksOnly StartMode = "tasks_only"
)

// DecideStartMode picks the entry mode for a scan: the area's first scan
// produces a dream vision, an in-progress session absorbs new tasks, and
// anything else opens a fresh tasks-only session.
func DecideStartMode(hasFirstVision, hasInProgress bool) StartMode {
	switch {
	case !hasFirstVision:
		return StartModeDreamVision
	case hasInProgress:
		return StartModeAppendTasks
	default:
		return StartModeTasksOnly
	}
}

type Task struct {
	ID          string
	Title       string
	Detail      string
	Points      int
	CompletedAt time.Time
}

func (t Task) Completed() bool {
	return !t.CompletedAt.IsZero()
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if t.Points < 0 {
		return fmt.Errorf("task points must be non-negative")
	}
	return nil
}

// Verification is the optional pass/fail ceremony attached to a session.
type Verification struct {
	Requested   bool
	Tier        Tier
	Outcome     Outcome
	RequestedAt time.Time
	VerifiedAt  time.Time
}

// Verified reports whether a terminal verdict has been applied.
func (v Verification) Verified() bool {
	return v.Outcome.Resolved()
}

// Session is one cleaning cycle for an area, from scan to completion.
type Session struct {
	ID              string
	AreaID          string
	CreatedAt       time.Time
	CompletedAt     time.Time
	Verification    Verification
	BasePoints      int
	BonusMultiplier float64
	TotalPoints     float64
	BeforePhoto     string
	AfterPhoto      string
	VisionImage     string
	Tasks           []Task
}

func NewSession(id, areaID, beforePhoto, visionImage string, now time.Time) Session {
	return Session{
		ID:        id,
		AreaID:    areaID,
		CreatedAt: now,
		Verification: Verification{
			Requested: false,
			Tier:      TierNone,
			Outcome:   OutcomeSkipped,
		},
		BasePoints:      0,
		BonusMultiplier: 1,
		TotalPoints:     0,
		BeforePhoto:     beforePhoto,
		VisionImage:     visionImage,
	}
}

// Completed reports whether the session has at least one task and every
// task is done.
func (s Session) Completed() bool {
	if len(s.Tasks) == 0 {
		return false
	}
	for _, t := range s.Tasks {
		if !t.Completed() {
			return false
		}
	}
	return true
}

func (s Session) InProgress() bool {
	return !s.Completed()
}

func (s Session) CompletedOn(day time.Time) bool {
	if s.CompletedAt.IsZero() {
		return false
	}
	return sameCalendarDay(s.CompletedAt, day)
}

// AddTasks appends tasks up to the per-generation cap and returns how
// many were actually added.
func (s *Session) AddTasks(tasks []Task) int {
	if len(tasks) > MaxTasksPerGeneration {
		tasks = tasks[:MaxTasksPerGeneration]
	}
	s.Tasks = append(s.Tasks, tasks...)
	return len(tasks)
}

// CompleteTask marks a task done and accumulates its points. It is
// idempotent: a second call for the same task reports done=false and
// changes nothing.
func (s *Session) CompleteTask(taskID string, now time.Time) (task Task, done bool, err error) {
	for i := range s.Tasks {
		if s.Tasks[i].ID != taskID {
			continue
		}
		if s.Tasks[i].Completed() {
			return s.Tasks[i], false, nil
		}
		s.Tasks[i].CompletedAt = now
		s.BasePoints += s.Tasks[i].Points
		s.Recompute()
		if s.Completed() && s.CompletedAt.IsZero() {
			s.CompletedAt = now
		}
		return s.Tasks[i], true, nil
	}
	return Task{}, false, fmt.Errorf("task %s not in session", taskID)
}

// RequestVerification opens the ceremony: outcome goes to pending, which
// by invariant requires the requested flag.
func (s *Session) RequestVerification(now time.Time) {
	if s.Verification.Requested {
		return
	}
	s.Verification.Requested = true
	s.Verification.Outcome = OutcomePending
	s.Verification.RequestedAt = now
	s.Recompute()
}

// ApplyVerdict records a terminal pass/fail at the given tier.
func (s *Session) ApplyVerdict(tier Tier, passed bool, afterPhoto string, now time.Time) {
	if !s.Verification.Requested {
		s.RequestVerification(now)
	}
	s.Verification.Tier = tier
	if passed {
		s.Verification.Outcome = OutcomePassed
	} else {
		s.Verification.Outcome = OutcomeFailed
	}
	s.Verification.VerifiedAt = now
	if afterPhoto != "" {
		s.AfterPhoto = afterPhoto
	}
	s.Recompute()
}

// SkipVerification abandons the ceremony; totals collapse to base.
func (s *Session) SkipVerification() {
	s.Verification.Requested = false
	s.Verification.Tier = TierNone
	s.Verification.Outcome = OutcomeSkipped
	s.Recompute()
}

// Recompute rederives totals from base points and verification state.
// Pending and skipped sessions always sit at base with multiplier 1.
func (s *Session) Recompute() {
	switch s.Verification.Outcome {
	case OutcomePassed, OutcomeFailed:
		s.TotalPoints, s.BonusMultiplier = Compute(s.BasePoints, s.Verification.Tier, s.Verification.Outcome == OutcomePassed)
	default:
		s.TotalPoints = float64(s.BasePoints)
		s.BonusMultiplier = 1
	}
}

// BonusDelta is the verification bonus above base, floored at zero.
func (s Session) BonusDelta() float64 {
	delta := s.TotalPoints - float64(s.BasePoints)
	if delta < 0 {
		return 0
	}
	return delta
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
