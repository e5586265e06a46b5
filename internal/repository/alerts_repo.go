package repository

import (
	"context"

	"carecircle/internal/domain"
)

// AlertsRepository accesses the alerts table.
type AlertsRepository interface {
	CreateAlert(ctx context.Context, a *domain.Alert) (int64, error)
	GetAlert(ctx context.Context, id int64) (*domain.Alert, error)
	// UpdateAlert overwrites the mutable columns of an existing alert.
	UpdateAlert(ctx context.Context, a *domain.Alert) error
	// ListAlertsForCaregiver returns alerts addressed to the caregiver,
	// newest first. limit <= 0 means no limit (feed aggregation reads
	// everything and truncates after sorting).
	ListAlertsForCaregiver(ctx context.Context, caregiverID int64, onlyUnread bool, limit int) ([]*domain.Alert, error)
}
