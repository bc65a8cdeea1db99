package engine

import (
	"sync/atomic"
	"time"
)

var _ TimeProvider = (*MockTimeProvider)(nil)

// MockTimeProvider is a manually driven clock for tests and deterministic replays
// Time is the start epoch plus an atomic offset, so readers never block writers
type MockTimeProvider struct {
	epoch  time.Time
	offset atomic.Int64 // nanoseconds since epoch
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{epoch: start}
}

func (m *MockTimeProvider) Now() time.Time {
	return m.epoch.Add(time.Duration(m.offset.Load()))
}

// SetTime jumps to t, which may lie before the start epoch
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.offset.Store(int64(t.Sub(m.epoch)))
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.offset.Add(int64(d))
}

// Elapsed is the total time advanced since the start epoch
func (m *MockTimeProvider) Elapsed() time.Duration {
	return time.Duration(m.offset.Load())
}

// Frames advances n fixed frames, calling step after each one, as a render loop driving Simulation.Step would
func (m *MockTimeProvider) Frames(n int, frame time.Duration, step func()) {
	for range n {
		m.Advance(frame)
		step()
	}
}
