package domain

import "time"

// Memory domain model (memories table).
// UserID is nullable: rows created before client scoping existed have no
// owner. The feed treats those as visible to every caregiver (see
// service.FeedService), which is a compatibility shim rather than an
// authorization rule.
type Memory struct {
	ID         int64     `db:"id" json:"id"`
	UserID     *int64    `db:"user_id" json:"user_id,omitempty"`
	Title      string    `db:"title" json:"title"`
	Note       string    `db:"note" json:"note,omitempty"`
	ImageURL   string    `db:"image_url" json:"image_url,omitempty"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
