package domain

import "time"

// Person roles. "user" is a care recipient; everyone else is part of a
// recipient's circle or an operator.
const (
	RoleUser      = "user"
	RoleCaregiver = "caregiver"
	RoleFamily    = "family"
	RoleAdmin     = "admin"
)

// Person domain model (people table).
type Person struct {
	ID        int64     `db:"id" json:"id"`
	Role      string    `db:"role" json:"role"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	AvatarURL string    `db:"avatar_url" json:"avatar_url,omitempty"`
	Location  string    `db:"location" json:"location,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
