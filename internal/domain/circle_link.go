package domain

import "time"

// Link roles. The first two grant a caregiver operational access to the
// client; the last two only make the member visible in the client's circle.
const (
	LinkRolePrimaryCaregiver = "primary_caregiver"
	LinkRoleCaregiver        = "caregiver"
	LinkRoleFamily           = "family"
	LinkRoleFriend           = "friend"
)

// CaregiverLinkRoles are the roles that put a client in a caregiver's
// authorized set.
var CaregiverLinkRoles = []string{LinkRolePrimaryCaregiver, LinkRoleCaregiver}

// ContactLinkRoles are the roles shown as a client's family/friend circle.
var ContactLinkRoles = []string{LinkRoleFamily, LinkRoleFriend}

// CircleLink domain model (circle_links table).
// At most one link exists per (client_id, member_id) pair; re-adding a link
// updates it in place.
type CircleLink struct {
	ID           int64     `db:"id" json:"id"`
	ClientID     int64     `db:"client_id" json:"client_id"`
	MemberID     int64     `db:"member_id" json:"member_id"`
	Role         string    `db:"role" json:"role"`
	Relationship string    `db:"relationship" json:"relationship,omitempty"`
	CanEdit      bool      `db:"can_edit" json:"can_edit"`
	Notify       bool      `db:"notify" json:"notify"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
