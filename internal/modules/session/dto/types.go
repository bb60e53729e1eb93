package dto

import "time"

type StartInput struct {
	AreaID    string
	PhotoPath string
}

type StartOutput struct {
	SessionID   string
	AreaID      string
	Mode        string
	TaskCount   int
	VisionImage string
	StartedAt   time.Time
	// Warning carries a non-blocking notice, e.g. the task oracle being
	// unreachable and generic tasks used instead.
	Warning string
}

type CompleteTaskInput struct {
	AreaID string
	TaskID string
}

type CompleteTaskOutput struct {
	SessionID        string
	TaskID           string
	AlreadyDone      bool
	PointsEarned     int
	BasePoints       int
	TotalPoints      float64
	SessionCompleted bool
	ReportPath       string
	// Warning carries a non-blocking notice, e.g. the completion report
	// failing to write.
	Warning string
}

type TaskOutput struct {
	ID        string
	Title     string
	Detail    string
	Points    int
	Completed bool
}

type SessionOutput struct {
	SessionID       string
	AreaID          string
	CreatedAt       time.Time
	CompletedAt     time.Time
	Completed       bool
	Requested       bool
	Tier            string
	Outcome         string
	BasePoints      int
	BonusMultiplier float64
	TotalPoints     float64
	BeforePhoto     string
	AfterPhoto      string
	VisionImage     string
	Tasks           []TaskOutput
}
