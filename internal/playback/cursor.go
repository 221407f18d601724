// Package playback simulates a media cursor: a position that moves while
// playing and jumps on seek. It has no timers; callers drive it with Advance.
package playback

import "time"

// Cursor is the simulated playback head over a fixed-length media asset.
type Cursor struct {
	position float64
	duration float64
	playing  bool
	consumer func(position float64)
}

// NewCursor creates a paused cursor at 0 over duration seconds.
func NewCursor(duration float64) *Cursor {
	if duration < 0 {
		duration = 0
	}
	return &Cursor{duration: duration}
}

// Position returns the current position in seconds.
func (c *Cursor) Position() float64 { return c.position }

// Duration returns the media length in seconds.
func (c *Cursor) Duration() float64 { return c.duration }

// Playing reports whether the cursor advances on Advance.
func (c *Cursor) Playing() bool { return c.playing }

// Ended reports whether the cursor sits at the end of the media.
func (c *Cursor) Ended() bool { return c.position >= c.duration }

// Play starts playback. Playing at the end is a no-op.
func (c *Cursor) Play() {
	if c.Ended() {
		c.playing = false
		return
	}
	c.playing = true
}

// Pause stops playback.
func (c *Cursor) Pause() { c.playing = false }

// Toggle flips between playing and paused.
func (c *Cursor) Toggle() {
	if c.playing {
		c.Pause()
		return
	}
	c.Play()
}

// Seek moves the cursor to position, clamped to [0, duration], and emits a
// sample.
func (c *Cursor) Seek(position float64) {
	c.position = c.clamp(position)
	c.emit()
}

// Advance moves a playing cursor forward by dt and emits a sample. Reaching
// the end pauses the cursor. A paused cursor does not move or emit.
func (c *Cursor) Advance(dt time.Duration) {
	if !c.playing || dt <= 0 {
		return
	}
	c.position = c.clamp(c.position + dt.Seconds())
	if c.Ended() {
		c.playing = false
	}
	c.emit()
}

// Subscribe registers fn as the single consumer of position samples,
// replacing any earlier one. The returned func unsubscribes.
func (c *Cursor) Subscribe(fn func(position float64)) (unsubscribe func()) {
	c.consumer = fn
	return func() { c.consumer = nil }
}

func (c *Cursor) emit() {
	if c.consumer != nil {
		c.consumer(c.position)
	}
}

func (c *Cursor) clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > c.duration {
		return c.duration
	}
	return p
}
