package suggest

// Cursor tracks the highlighted suggestion. Position -1 means nothing is
// highlighted and the raw input is what Enter acts on. Positions stay
// clamped to [-1, count-1] no matter how the list shrinks or the user
// scrolls.
type Cursor struct {
	pos   int
	count int
}

func NewCursor() Cursor {
	return Cursor{pos: -1}
}

// SetCount resizes the candidate list and drops the highlight back to the
// raw input.
func (c *Cursor) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	c.count = n
	c.pos = -1
}

func (c *Cursor) Down() {
	if c.pos < c.count-1 {
		c.pos++
	}
}

func (c *Cursor) Up() {
	if c.pos > -1 {
		c.pos--
	}
}

// Pos returns the highlighted index, -1 for the raw input.
func (c *Cursor) Pos() int {
	return c.pos
}

// OnCandidate reports whether a suggestion (not the raw input) is
// highlighted.
func (c *Cursor) OnCandidate() bool {
	return c.pos >= 0 && c.pos < c.count
}
