package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Search outcomes recorded in the activity log
const (
	OutcomeResults    = "results"
	OutcomeEmpty      = "empty"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

// SearchEvent is one user-triggered search and what it showed
type SearchEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	SessionID   string    `gorm:"index;not null" json:"session_id"`
	Kind        string    `gorm:"index;not null" json:"kind"` // nutrition, autocomplete, recommend, filter
	Query       string    `gorm:"type:text" json:"query"`
	Outcome     string    `gorm:"not null" json:"outcome"`
	ResultCount int       `json:"result_count"`
	DurationMs  int64     `json:"duration_ms"`
}

// TableName returns the table name for the SearchEvent model
func (SearchEvent) TableName() string {
	return "search_events"
}

// BeforeCreate assigns the id so sqlite and postgres behave the same
func (e *SearchEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// SearchEventFilters narrows a listing of search events
type SearchEventFilters struct {
	SessionID string `json:"session_id,omitempty"`
	Kind      string `json:"kind,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}
