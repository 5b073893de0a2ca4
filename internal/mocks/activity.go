package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutriscope/backend/internal/models"
)

// MockRecorder is a mock implementation of the activity Recorder interface
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, event *models.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRecorder) Recent(ctx context.Context, filters models.SearchEventFilters) ([]models.SearchEvent, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SearchEvent), args.Error(1)
}
