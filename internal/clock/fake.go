package clock

import "time"

// Fake is a manually advanced Clock for tests.
type Fake struct {
	now time.Time
}

// NewFake builds a Fake pinned to t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

// Now returns the pinned time.
func (c *Fake) Now() time.Time {
	return c.now
}

// Advance moves the pinned time forward by d.
func (c *Fake) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
