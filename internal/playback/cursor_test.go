package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursor_AdvanceOnlyWhilePlaying(t *testing.T) {
	c := NewCursor(120)
	var samples []float64
	c.Subscribe(func(p float64) { samples = append(samples, p) })

	c.Advance(time.Second)
	assert.Equal(t, 0.0, c.Position())
	assert.Empty(t, samples)

	c.Play()
	c.Advance(1500 * time.Millisecond)
	assert.InDelta(t, 1.5, c.Position(), 1e-9)
	assert.Equal(t, []float64{1.5}, samples)

	c.Pause()
	c.Advance(time.Second)
	assert.InDelta(t, 1.5, c.Position(), 1e-9)
}

func TestCursor_SeekClamps(t *testing.T) {
	tests := []struct {
		name string
		to   float64
		want float64
	}{
		{"inside", 42, 42},
		{"negative", -3, 0},
		{"past end", 500, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(120)
			var got float64 = -1
			c.Subscribe(func(p float64) { got = p })
			c.Seek(tt.to)
			assert.Equal(t, tt.want, c.Position())
			assert.Equal(t, tt.want, got, "seek emits a sample")
		})
	}
}

func TestCursor_EndPauses(t *testing.T) {
	c := NewCursor(10)
	c.Seek(9.5)
	c.Play()
	c.Advance(time.Second)

	assert.Equal(t, 10.0, c.Position())
	assert.True(t, c.Ended())
	assert.False(t, c.Playing())

	c.Play()
	assert.False(t, c.Playing(), "cannot play past the end")
}

func TestCursor_Unsubscribe(t *testing.T) {
	c := NewCursor(60)
	calls := 0
	unsub := c.Subscribe(func(float64) { calls++ })
	c.Seek(1)
	unsub()
	c.Seek(2)
	assert.Equal(t, 1, calls)
}

func TestCursor_SubscribeReplaces(t *testing.T) {
	c := NewCursor(60)
	first, second := 0, 0
	c.Subscribe(func(float64) { first++ })
	c.Subscribe(func(float64) { second++ })
	c.Seek(5)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestCursor_Toggle(t *testing.T) {
	c := NewCursor(60)
	c.Toggle()
	assert.True(t, c.Playing())
	c.Toggle()
	assert.False(t, c.Playing())
}
