package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialMovingAveragePrimesOnFirstSample(t *testing.T) {
	avg := NewExponentialMovingAverage(0.9)
	avg.Add(10)
	assert.Equal(t, float64(10), avg.Average())
}

func TestExponentialMovingAverageWeighsHistory(t *testing.T) {
	avg := NewExponentialMovingAverage(0.9)
	avg.Add(10)
	avg.Add(20)
	assert.InDelta(t, 11, avg.Average(), 1e-9)
}

func TestFrameCounterDelta(t *testing.T) {
	counter := NewFrameCounter(NewExponentialMovingAverage(0.9))
	start := time.Unix(0, 0)

	assert.Zero(t, counter.Tick(start))
	assert.Equal(t, 16*time.Millisecond, counter.Tick(start.Add(16*time.Millisecond)))
	assert.Equal(t, uint64(2), counter.Frames())
}

func TestFrameCounterFps(t *testing.T) {
	counter := NewFrameCounter(NewExponentialMovingAverage(0.9))
	start := time.Unix(0, 0)

	assert.Zero(t, counter.Fps())

	now := start
	for i := 0; i < 10; i++ {
		counter.Tick(now)
		now = now.Add(10 * time.Millisecond)
	}
	assert.InDelta(t, 100, counter.Fps(), 1e-6)
}
