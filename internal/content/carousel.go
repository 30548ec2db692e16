package content

// Carousel is the state machine behind an inline image gallery: a current
// index with wrap-around navigation and a fullscreen flag. No I/O.
type Carousel struct {
	images     []string
	current    int
	fullscreen bool
}

func NewCarousel(images []string) *Carousel {
	return &Carousel{images: images}
}

func (c *Carousel) Len() int { return len(c.images) }

// Current returns the image at the current index. The second return is
// false for an empty carousel, which is a defined no-op state.
func (c *Carousel) Current() (string, bool) {
	if len(c.images) == 0 {
		return "", false
	}
	return c.images[c.current], true
}

func (c *Carousel) Index() int { return c.current }

func (c *Carousel) Next() {
	if len(c.images) == 0 {
		return
	}
	c.current = (c.current + 1) % len(c.images)
}

func (c *Carousel) Prev() {
	if len(c.images) == 0 {
		return
	}
	c.current = (c.current - 1 + len(c.images)) % len(c.images)
}

// JumpTo sets the index directly. Out-of-range values are ignored.
func (c *Carousel) JumpTo(i int) {
	if i < 0 || i >= len(c.images) {
		return
	}
	c.current = i
}

func (c *Carousel) ToggleFullscreen() { c.fullscreen = !c.fullscreen }

func (c *Carousel) Fullscreen() bool { return c.fullscreen }
