package engine

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// MovingAverage smooths a stream of samples.
type MovingAverage interface {

	// Add folds one sample into the average
	Add(sample float64)

	// Average returns the smoothed value
	Average() float64
}

// NewExponentialMovingAverage creates an average where alpha is the
// weight of history: higher alpha reacts slower to new samples.
func NewExponentialMovingAverage(alpha float64) *ExponentialMovingAverage {
	return &ExponentialMovingAverage{alpha: alpha}
}

// ExponentialMovingAverage weighs recent samples exponentially less
// the older they get.
type ExponentialMovingAverage struct {
	alpha   float64
	average float64
	primed  bool
}

// Add implements MovingAverage
func (e *ExponentialMovingAverage) Add(sample float64) {
	if !e.primed {
		e.average = sample
		e.primed = true
		return
	}
	e.average = e.alpha*e.average + (1-e.alpha)*sample
}

// Average implements MovingAverage
func (e *ExponentialMovingAverage) Average() float64 {
	return e.average
}

// NewFrameCounter creates a counter that smooths frame times with avg.
func NewFrameCounter(avg MovingAverage) *FrameCounter {
	return &FrameCounter{avg: avg}
}

// FrameCounter tracks the frame number, the time the last frame took
// and a smoothed frames per second value.
type FrameCounter struct {
	avg    MovingAverage
	last   time.Time
	delta  time.Duration
	frames uint64
}

// Tick marks a frame boundary and returns the time since the
// previous one. The first tick returns zero.
func (f *FrameCounter) Tick(now time.Time) time.Duration {
	if !f.last.IsZero() {
		f.delta = now.Sub(f.last)
		f.avg.Add(f.delta.Seconds())
	}
	f.last = now
	f.frames++
	return f.delta
}

// Delta returns the duration of the last completed frame.
func (f *FrameCounter) Delta() time.Duration {
	return f.delta
}

// Frames returns the number of ticks so far.
func (f *FrameCounter) Frames() uint64 {
	return f.frames
}

// Fps returns the smoothed frames per second.
func (f *FrameCounter) Fps() float64 {
	avg := f.avg.Average()
	if avg <= 0 {
		return 0
	}
	return 1 / avg
}

// NewFpsPrinter creates a printer that logs the counter's fps at most
// once per throttle interval.
func NewFpsPrinter(counter *FrameCounter, throttle time.Duration) *FpsPrinter {
	return &FpsPrinter{
		counter:  counter,
		throttle: throttle,
	}
}

// FpsPrinter periodically logs the smoothed frame rate.
type FpsPrinter struct {
	counter   *FrameCounter
	throttle  time.Duration
	lastPrint time.Time
}

// Print logs the frame rate if the throttle interval has passed.
func (p *FpsPrinter) Print(now time.Time) {
	if now.Sub(p.lastPrint) < p.throttle {
		return
	}
	p.lastPrint = now
	log.WithFields(log.Fields{
		"fps":   p.counter.Fps(),
		"frame": p.counter.Frames(),
	}).Info("frame rate")
}
