package domain

import "time"

// CheckIn domain model (checkins table). Immutable once created.
type CheckIn struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	By         string    `db:"by" json:"by"`
	Mood       string    `db:"mood" json:"mood,omitempty"`
	SleepHours *float64  `db:"sleep_hours" json:"sleep_hours,omitempty"`
	Hydration  string    `db:"hydration" json:"hydration,omitempty"`
	Notes      string    `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
