package domain

import "time"

// Alert kinds. "inactivity" is written by callers like any other kind; there
// is no detection engine behind it.
const (
	AlertKindInactivity = "inactivity"
	AlertKindMissedTask = "missed_task"
	AlertKindCustom     = "custom"
)

// AlertKinds lists the accepted values for Alert.Kind.
var AlertKinds = []string{AlertKindInactivity, AlertKindMissedTask, AlertKindCustom}

// Alert domain model (alerts table). Directed from a client to a specific
// caregiver.
type Alert struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CaregiverID int64     `db:"caregiver_id" json:"caregiver_id"`
	Kind        string    `db:"kind" json:"kind"`
	Message     string    `db:"message" json:"message"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AlertPatch lists the mutable alert fields for PATCH /alerts/{id}.
type AlertPatch struct {
	IsRead *bool `json:"is_read"`
}

// Apply copies the provided fields onto the alert.
func (p *AlertPatch) Apply(a *Alert) {
	if p.IsRead != nil {
		a.IsRead = *p.IsRead
	}
}
