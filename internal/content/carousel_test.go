package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarousel_NextPrevRoundTrip(t *testing.T) {
	for n := 1; n <= 5; n++ {
		images := make([]string, n)
		for start := 0; start < n; start++ {
			c := NewCarousel(images)
			c.JumpTo(start)
			c.Next()
			c.Prev()
			assert.Equal(t, start, c.Index(), "n=%d start=%d", n, start)
		}
	}
}

func TestCarousel_Wraps(t *testing.T) {
	c := NewCarousel([]string{"a", "b", "c"})

	c.JumpTo(2)
	c.Next()
	assert.Equal(t, 0, c.Index())

	c.JumpTo(0)
	c.Prev()
	assert.Equal(t, 2, c.Index())
}

func TestCarousel_Empty(t *testing.T) {
	c := NewCarousel(nil)

	_, ok := c.Current()
	assert.False(t, ok)

	// navigation on an empty carousel is a no-op, not a panic
	c.Next()
	c.Prev()
	c.JumpTo(3)
	assert.Equal(t, 0, c.Index())
}

func TestCarousel_JumpToIgnoresOutOfRange(t *testing.T) {
	c := NewCarousel([]string{"a", "b"})
	c.JumpTo(1)
	c.JumpTo(5)
	assert.Equal(t, 1, c.Index())
}

func TestCarousel_Fullscreen(t *testing.T) {
	c := NewCarousel([]string{"a"})
	assert.False(t, c.Fullscreen())
	c.ToggleFullscreen()
	assert.True(t, c.Fullscreen())
	c.ToggleFullscreen()
	assert.False(t, c.Fullscreen())
}

func TestCarousel_Current(t *testing.T) {
	c := NewCarousel([]string{"a", "b"})
	c.Next()
	img, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, "b", img)
}
