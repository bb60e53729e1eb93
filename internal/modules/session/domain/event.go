package domain

import "time"

// CompletionEvent is the analytics payload emitted when a task is done.
// Delivery is best effort; no component depends on it succeeding.
type CompletionEvent struct {
	Kind       string    `json:"kind"`
	AreaID     string    `json:"area_id"`
	Persona    string    `json:"persona"`
	Weekday    string    `json:"weekday"`
	Hour       int       `json:"hour"`
	Points     int       `json:"points"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewCompletionEvent(areaID, persona string, points int, now time.Time) CompletionEvent {
	return CompletionEvent{
		Kind:       "task_completed",
		AreaID:     areaID,
		Persona:    persona,
		Weekday:    now.Weekday().String(),
		Hour:       now.Hour(),
		Points:     points,
		OccurredAt: now,
	}
}
