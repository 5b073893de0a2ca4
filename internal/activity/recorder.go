// Package activity keeps the log of searches users ran and what each one showed.
package activity

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/nutriscope/backend/internal/models"
)

// DefaultLimit and MaxLimit bound a Recent listing
const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Recorder stores and lists search events
type Recorder interface {
	Record(ctx context.Context, event *models.SearchEvent) error
	Recent(ctx context.Context, filters models.SearchEventFilters) ([]models.SearchEvent, error)
}

// GormRecorder stores search events through gorm
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder creates a new GormRecorder instance
func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

// Record inserts event
func (r *GormRecorder) Record(ctx context.Context, event *models.SearchEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record search event: %w", err)
	}
	return nil
}

// Recent lists the newest events first
func (r *GormRecorder) Recent(ctx context.Context, filters models.SearchEventFilters) ([]models.SearchEvent, error) {
	query := r.db.WithContext(ctx).Model(&models.SearchEvent{})
	if filters.SessionID != "" {
		query = query.Where("session_id = ?", filters.SessionID)
	}
	if filters.Kind != "" {
		query = query.Where("kind = ?", filters.Kind)
	}

	var events []models.SearchEvent
	if err := query.Order("created_at DESC").Limit(clampLimit(filters.Limit)).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list search events: %w", err)
	}
	return events, nil
}

// NopRecorder drops every event. Used when no database is configured.
type NopRecorder struct{}

// Record does nothing
func (NopRecorder) Record(context.Context, *models.SearchEvent) error { return nil }

// Recent returns no events
func (NopRecorder) Recent(context.Context, models.SearchEventFilters) ([]models.SearchEvent, error) {
	return []models.SearchEvent{}, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// NewEvent starts an event for a search that began at start
func NewEvent(session, kind, query string, start time.Time) *models.SearchEvent {
	return &models.SearchEvent{
		SessionID:  session,
		Kind:       kind,
		Query:      query,
		DurationMs: time.Since(start).Milliseconds(),
	}
}
