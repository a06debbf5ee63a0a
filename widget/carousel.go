package widget

import "time"

// Carousel tracks the visible slide. Next and Prev wrap; GoTo clamps.
// Autoplay advances on Tick once Interval has elapsed, except while the
// user is interacting.
type Carousel struct {
	Len      int
	Interval time.Duration

	index       int
	interacting bool
	elapsed     time.Duration
}

// NewCarousel returns a carousel over n slides.
func NewCarousel(n int, interval time.Duration) *Carousel {
	return &Carousel{Len: n, Interval: interval}
}

// Index returns the visible slide.
func (c *Carousel) Index() int { return c.index }

// Next advances one slide, wrapping to the first.
func (c *Carousel) Next() int {
	if c.Len > 0 {
		c.index = (c.index + 1) % c.Len
	}
	c.elapsed = 0
	return c.index
}

// Prev goes back one slide, wrapping to the last.
func (c *Carousel) Prev() int {
	if c.Len > 0 {
		c.index = (c.index - 1 + c.Len) % c.Len
	}
	c.elapsed = 0
	return c.index
}

// GoTo jumps to slide i, clamped to the valid range.
func (c *Carousel) GoTo(i int) int {
	switch {
	case c.Len <= 0:
		i = 0
	case i < 0:
		i = 0
	case i >= c.Len:
		i = c.Len - 1
	}
	c.index = i
	c.elapsed = 0
	return c.index
}

// SetInteracting pauses (true) or resumes (false) autoplay.
func (c *Carousel) SetInteracting(v bool) {
	c.interacting = v
	if !v {
		c.elapsed = 0
	}
}

// Tick advances autoplay time by dt and reports whether the slide changed.
func (c *Carousel) Tick(dt time.Duration) bool {
	if c.interacting || c.Interval <= 0 || c.Len < 2 {
		return false
	}
	c.elapsed += dt
	if c.elapsed < c.Interval {
		return false
	}
	c.Next()
	return true
}
