package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// Feed item kinds.
const (
	FeedKindMemory  = "memory"
	FeedKindTask    = "task"
	FeedKindCheckin = "checkin"
	FeedKindAlert   = "alert"
)

// DefaultFeedLimit bounds the feed when the caller does not ask for a limit.
const DefaultFeedLimit = 50

const overdueMarker = "Overdue."

// FeedItem is one entry of the caregiver updates feed. Data carries the full
// source record for client-side rendering.
type FeedItem struct {
	Kind      string         `json:"kind"`
	SourceID  int64          `json:"source_id"`
	UserID    *int64         `json:"user_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Title     string         `json:"title,omitempty"`
	Summary   string         `json:"summary,omitempty"`
	Data      map[string]any `json:"data"`
}

// FeedService merges tasks, check-ins, alerts, and memories of a caregiver's
// authorized clients into one reverse-chronological feed. Per-source
// timestamps are not pre-sorted relative to each other, so it collects all
// candidates, sorts once, then truncates.
type FeedService struct {
	circle   *CircleService
	tasks    repository.TasksRepository
	checkins repository.CheckInsRepository
	alerts   repository.AlertsRepository
	memories repository.MemoriesRepository
	logger   *zap.Logger
}

func NewFeedService(
	circle *CircleService,
	tasks repository.TasksRepository,
	checkins repository.CheckInsRepository,
	alerts repository.AlertsRepository,
	memories repository.MemoriesRepository,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		circle:   circle,
		tasks:    tasks,
		checkins: checkins,
		alerts:   alerts,
		memories: memories,
		logger:   logger,
	}
}

// BuildFeed returns at most limit items, most recent first. A caregiver with
// no authorized clients gets an empty feed, not an error.
func (s *FeedService) BuildFeed(ctx context.Context, caregiverID int64, limit int) ([]FeedItem, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	clientIDs, err := s.circle.AuthorizedClients(ctx, caregiverID)
	if err != nil {
		return nil, err
	}
	if len(clientIDs) == 0 {
		return []FeedItem{}, nil
	}

	now := time.Now().UTC()
	feed := make([]FeedItem, 0)

	// Tasks: open/missed only. Timestamp prefers due_at over created_at.
	tasks, err := s.tasks.ListActionableTasks(ctx, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to collect tasks: %w", err)
	}
	for _, task := range tasks {
		ts := task.CreatedAt
		if task.DueAt != nil {
			ts = *task.DueAt
		}
		feed = append(feed, FeedItem{
			Kind:      FeedKindTask,
			SourceID:  task.ID,
			UserID:    &task.UserID,
			Timestamp: ts,
			Title:     task.Title,
			Summary:   taskSummary(task, now),
			Data:      taskData(task),
		})
	}

	// Check-ins.
	checkins, err := s.checkins.ListCheckInsForClients(ctx, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to collect checkins: %w", err)
	}
	for _, checkin := range checkins {
		feed = append(feed, FeedItem{
			Kind:      FeedKindCheckin,
			SourceID:  checkin.ID,
			UserID:    &checkin.UserID,
			Timestamp: checkin.CreatedAt,
			Title:     fmt.Sprintf("Check-in (%s)", checkin.By),
			Summary:   checkin.Notes,
			Data:      checkinData(checkin),
		})
	}

	// Alerts are already caregiver-scoped by caregiver_id, independent of
	// the authorized client set.
	alerts, err := s.alerts.ListAlertsForCaregiver(ctx, caregiverID, false, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to collect alerts: %w", err)
	}
	for _, alert := range alerts {
		feed = append(feed, FeedItem{
			Kind:      FeedKindAlert,
			SourceID:  alert.ID,
			UserID:    &alert.UserID,
			Timestamp: alert.CreatedAt,
			Title:     alert.Kind,
			Summary:   alert.Message,
			Data:      alertData(alert),
		})
	}

	// Memories: scoped to authorized clients when owned. Rows without an
	// owner predate client scoping and are included for every caregiver —
	// a compatibility shim and a known disclosure gap, not an
	// authorization boundary.
	memories, err := s.memories.ListMemoriesForClients(ctx, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to collect memories: %w", err)
	}
	for _, memory := range memories {
		feed = append(feed, FeedItem{
			Kind:      FeedKindMemory,
			SourceID:  memory.ID,
			UserID:    memory.UserID,
			Timestamp: memory.CreatedAt,
			Title:     memory.Title,
			Summary:   memory.Note,
			Data:      memoryData(memory),
		})
	}

	// Stable sort keeps collection order on timestamp ties.
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

// taskSummary recomputes the overdue annotation from the stored description
// on every call; the marker is never persisted and never doubled.
func taskSummary(task *domain.Task, now time.Time) string {
	summary := task.Description
	if task.Status != domain.TaskStatusOpen || task.DueAt == nil || !task.DueAt.Before(now) {
		return summary
	}
	if strings.HasSuffix(summary, overdueMarker) {
		return summary
	}
	if summary == "" {
		return overdueMarker
	}
	return summary + " " + overdueMarker
}

func taskData(t *domain.Task) map[string]any {
	data := map[string]any{
		"id":          t.ID,
		"user_id":     t.UserID,
		"assigned_by": t.AssignedBy,
		"title":       t.Title,
		"description": t.Description,
		"repeat":      t.Repeat,
		"status":      t.Status,
		"created_at":  t.CreatedAt,
	}
	if t.DueAt != nil {
		data["due_at"] = *t.DueAt
	}
	return data
}

func checkinData(c *domain.CheckIn) map[string]any {
	data := map[string]any{
		"id":         c.ID,
		"user_id":    c.UserID,
		"by":         c.By,
		"mood":       c.Mood,
		"hydration":  c.Hydration,
		"notes":      c.Notes,
		"created_at": c.CreatedAt,
	}
	if c.SleepHours != nil {
		data["sleep_hours"] = *c.SleepHours
	}
	return data
}

func alertData(a *domain.Alert) map[string]any {
	return map[string]any{
		"id":           a.ID,
		"user_id":      a.UserID,
		"caregiver_id": a.CaregiverID,
		"kind":         a.Kind,
		"message":      a.Message,
		"is_read":      a.IsRead,
		"created_at":   a.CreatedAt,
	}
}

func memoryData(m *domain.Memory) map[string]any {
	data := map[string]any{
		"id":          m.ID,
		"title":       m.Title,
		"note":        m.Note,
		"image_url":   m.ImageURL,
		"occurred_at": m.OccurredAt,
		"created_at":  m.CreatedAt,
	}
	if m.UserID != nil {
		data["user_id"] = *m.UserID
	}
	return data
}
