package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerClosedByDefault(t *testing.T) {
	b := newBreaker(3, time.Minute)
	assert.True(t, b.TryAcquire())
	assert.True(t, b.TryAcquire())
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	b := newBreaker(2, time.Minute)

	b.OnFailure()
	assert.True(t, b.TryAcquire(), "one failure below threshold keeps it closed")

	b.OnFailure()
	assert.False(t, b.TryAcquire(), "threshold reached, breaker open")
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	b := newBreaker(1, 10*time.Millisecond)
	b.OnFailure()
	assert.False(t, b.TryAcquire())

	time.Sleep(20 * time.Millisecond)

	assert.True(t, b.TryAcquire(), "window elapsed, single probe allowed")
	assert.False(t, b.TryAcquire(), "second probe blocked while first in flight")

	b.OnSuccess()
	assert.True(t, b.TryAcquire(), "probe success closes the breaker")
}

func TestBreakerProbeFailureReopens(t *testing.T) {
	b := newBreaker(1, 10*time.Millisecond)
	b.OnFailure()
	time.Sleep(20 * time.Millisecond)

	assert.True(t, b.TryAcquire())
	b.OnFailure()
	assert.False(t, b.TryAcquire(), "failed probe reopens the window")
}
