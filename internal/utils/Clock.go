package utils

import (
	"time"

	"github.com/klokku/occasions/pkg/date"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

// Today returns the calendar date of the clock's current time in its own location.
func Today(clock Clock) date.Date {
	return date.FromTime(clock.Now())
}
