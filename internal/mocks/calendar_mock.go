package mocks

import (
	"time"

	"github.com/satriadp/jadwalbot/internal/gcal"
	"github.com/stretchr/testify/mock"
)

// MockCalendar is a mock implementation of the calendar provider
type MockCalendar struct {
	mock.Mock
}

func (m *MockCalendar) IsAuthenticated() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockCalendar) CreateEvent(input gcal.EventInput) (*gcal.EventDetails, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gcal.EventDetails), args.Error(1)
}

func (m *MockCalendar) ListUpcoming(max int64) ([]gcal.EventDetails, error) {
	args := m.Called(max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gcal.EventDetails), args.Error(1)
}

func (m *MockCalendar) ListEventsInRange(timeMin, timeMax time.Time, max int64) ([]gcal.EventDetails, error) {
	args := m.Called(timeMin, timeMax, max)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gcal.EventDetails), args.Error(1)
}

func (m *MockCalendar) DeleteEvent(eventID string) error {
	args := m.Called(eventID)
	return args.Error(0)
}
