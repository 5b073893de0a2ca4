package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriscope/backend/internal/models"
	"github.com/pageza/nutriscope/backend/internal/testhelpers"
)

func TestGormRecorder_SQLite(t *testing.T) {
	exerciseRecorder(t, NewGormRecorder(testhelpers.SetupSQLiteDB(t)))
}

func TestGormRecorder_Postgres(t *testing.T) {
	exerciseRecorder(t, NewGormRecorder(testhelpers.SetupPostgresDB(t)))
}

func exerciseRecorder(t *testing.T, rec *GormRecorder) {
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	events := []*models.SearchEvent{
		{SessionID: "s1", Kind: "nutrition", Query: "egg", Outcome: models.OutcomeResults, ResultCount: 1, CreatedAt: base},
		{SessionID: "s1", Kind: "filter", Query: "Dessert", Outcome: models.OutcomeEmpty, CreatedAt: base.Add(time.Minute)},
		{SessionID: "s2", Kind: "nutrition", Query: "rice", Outcome: models.OutcomeError, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		require.NoError(t, rec.Record(ctx, e))
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := rec.Recent(ctx, models.SearchEventFilters{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "rice", got[0].Query)
		assert.Equal(t, "egg", got[2].Query)
	})

	t.Run("filter by session and kind", func(t *testing.T) {
		got, err := rec.Recent(ctx, models.SearchEventFilters{SessionID: "s1", Kind: "nutrition"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.OutcomeResults, got[0].Outcome)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := rec.Recent(ctx, models.SearchEventFilters{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, DefaultLimit, clampLimit(-5))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, MaxLimit, clampLimit(10000))
}

func TestNopRecorder(t *testing.T) {
	var rec Recorder = NopRecorder{}

	require.NoError(t, rec.Record(context.Background(), &models.SearchEvent{}))
	got, err := rec.Recent(context.Background(), models.SearchEventFilters{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("s1", "recommend", "chili", time.Now().Add(-250*time.Millisecond))

	assert.Equal(t, "s1", e.SessionID)
	assert.Equal(t, "recommend", e.Kind)
	assert.GreaterOrEqual(t, e.DurationMs, int64(250))
}
