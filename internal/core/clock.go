package core

import "time"

// DefaultMaxFrame is the frame time cap used by interactive sessions.
const DefaultMaxFrame = time.Second / 30

// Clock converts wall-clock frame time into a whole number of fixed
// simulation steps. Leftover time carries over to the next frame.
type Clock struct {
	step     time.Duration
	maxFrame time.Duration
	acc      time.Duration
}

// NewClock creates a clock stepping tickRate times per second.
// Frame times above maxFrame are truncated so a stalled frame cannot
// trigger a long catch-up burst; maxFrame <= 0 disables the cap.
func NewClock(tickRate int, maxFrame time.Duration) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{
		step:     time.Second / time.Duration(tickRate),
		maxFrame: maxFrame,
	}
}

// Step returns the fixed step length.
func (c *Clock) Step() time.Duration {
	return c.step
}

// StepMillis returns the fixed step length in milliseconds.
func (c *Clock) StepMillis() float64 {
	return float64(c.step) / float64(time.Millisecond)
}

// Advance adds elapsed frame time and returns how many fixed steps are due.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	if c.maxFrame > 0 && elapsed > c.maxFrame {
		elapsed = c.maxFrame
	}
	c.acc += elapsed

	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	return n
}

// Alpha returns the fraction of a step currently accumulated, in [0, 1).
func (c *Clock) Alpha() float64 {
	return float64(c.acc) / float64(c.step)
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
