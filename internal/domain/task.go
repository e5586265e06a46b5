package domain

import "time"

// Task statuses.
const (
	TaskStatusOpen   = "open"
	TaskStatusDone   = "done"
	TaskStatusMissed = "missed"
)

// Repeat cadences. Advisory only: nothing regenerates tasks automatically.
const (
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// Task domain model (tasks table).
type Task struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	AssignedBy  int64      `db:"assigned_by" json:"assigned_by"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description,omitempty"`
	DueAt       *time.Time `db:"due_at" json:"due_at,omitempty"`
	Repeat      string     `db:"repeat" json:"repeat,omitempty"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// TaskPatch lists the mutable task fields for PATCH /tasks/{id}.
// Nil means "leave as is"; only provided fields are applied.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Repeat      *string    `json:"repeat"`
	Status      *string    `json:"status"`
}

// Apply copies the provided fields onto the task.
func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueAt != nil {
		t.DueAt = p.DueAt
	}
	if p.Repeat != nil {
		t.Repeat = *p.Repeat
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}
