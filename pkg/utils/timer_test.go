package utils

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimer(t *testing.T) {
	timer := NewTimer("test")
	assert.NotNil(t, timer)
	assert.Equal(t, "test", timer.name)
	assert.True(t, timer.enabled)
}

func TestTimerDisabled(t *testing.T) {
	timer := NewTimer("test", WithEnabled(false))

	pt := timer.Start("phase1")
	require.NotNil(t, pt)
	assert.Equal(t, time.Duration(0), pt.Stop())
	assert.Empty(t, timer.GetPhases())
}

func TestTimerPhases(t *testing.T) {
	mockClock := NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := NewTimer("test", WithClock(mockClock))

	pt1 := timer.Start("read")
	mockClock.Advance(100 * time.Millisecond)
	pt1.Stop()

	pt2 := timer.Start("parse")
	mockClock.Advance(200 * time.Millisecond)
	pt2.Stop()

	assert.Equal(t, 100*time.Millisecond, timer.GetDuration("read"))
	assert.Equal(t, 200*time.Millisecond, timer.GetDuration("parse"))
	assert.Equal(t, 300*time.Millisecond, timer.TotalDuration())

	phases := timer.GetPhases()
	require.Len(t, phases, 2)
	assert.Equal(t, "read", phases[0].Name)
	assert.Equal(t, "parse", phases[1].Name)
}

func TestTimerStopIsIdempotent(t *testing.T) {
	mockClock := NewMockClock(time.Now())
	timer := NewTimer("test", WithClock(mockClock))

	pt := timer.Start("phase")
	mockClock.Advance(50 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, pt.Stop())

	mockClock.Advance(time.Second)
	assert.Equal(t, 50*time.Millisecond, pt.Stop())
}

func TestTimerStopUnknownPhase(t *testing.T) {
	timer := NewTimer("test")
	assert.Equal(t, time.Duration(0), timer.StopPhase("missing"))
	assert.Equal(t, time.Duration(0), timer.GetDuration("missing"))
}

func TestTimeFuncWithError(t *testing.T) {
	mockClock := NewMockClock(time.Now())
	timer := NewTimer("test", WithClock(mockClock))

	boom := errors.New("boom")
	d, err := timer.TimeFuncWithError("group", func() error {
		mockClock.Advance(10 * time.Millisecond)
		return boom
	})

	assert.Equal(t, boom, err)
	assert.Equal(t, 10*time.Millisecond, d)
}

func TestTimerPrintSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	mockClock := NewMockClock(time.Now())
	timer := NewTimer("analysis", WithClock(mockClock), WithLogger(NewDefaultLogger(LevelDebug, buf)))

	pt := timer.Start("parse")
	mockClock.Advance(5 * time.Millisecond)
	pt.Stop()
	timer.PrintSummary()

	assert.Contains(t, buf.String(), "analysis phase 1 - parse: 5ms")
	assert.Contains(t, buf.String(), "analysis total: 5ms")
}

func TestRealClock(t *testing.T) {
	c := NewRealClock()
	start := c.Now()
	assert.GreaterOrEqual(t, c.Since(start), time.Duration(0))
}
