// Package cursor tracks the selected row of a display list.
package cursor

import (
	"errors"
	"fmt"
)

// ErrInvalidCursor is the panic value for an out-of-range Set. It marks a
// broken event, never a runtime condition.
var ErrInvalidCursor = errors.New("invalid cursor state")

// Direction is a navigation step.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Cursor is an index into a list of length n. It is inactive while n is 0;
// otherwise 0 <= idx < n.
type Cursor struct {
	idx int
	n   int
}

// New returns a cursor at 0 for a list of length n.
func New(n int) Cursor {
	c := Cursor{}
	c.OnListChanged(n)
	return c
}

// Index returns the selected index and whether the cursor is active.
func (c Cursor) Index() (int, bool) {
	if c.n == 0 {
		return 0, false
	}
	return c.idx, true
}

// Len returns the list length the cursor was last validated against.
func (c Cursor) Len() int {
	return c.n
}

// Active reports whether there is anything to select.
func (c Cursor) Active() bool {
	return c.n > 0
}

// NavigateUp moves up one row, wrapping from the top to the bottom.
func (c *Cursor) NavigateUp() {
	if c.n == 0 {
		return
	}
	if c.idx == 0 {
		c.idx = c.n - 1
		return
	}
	c.idx--
}

// NavigateDown moves down one row, wrapping from the bottom to the top.
func (c *Cursor) NavigateDown() {
	if c.n == 0 {
		return
	}
	if c.idx == c.n-1 {
		c.idx = 0
		return
	}
	c.idx++
}

// Move steps in dir. With wrap disabled the cursor stops at either end.
func (c *Cursor) Move(dir Direction, wrap bool) {
	if c.n == 0 {
		return
	}
	if !wrap {
		if dir == Up && c.idx == 0 || dir == Down && c.idx == c.n-1 {
			return
		}
	}
	if dir == Up {
		c.NavigateUp()
		return
	}
	c.NavigateDown()
}

// Set selects idx. It panics with ErrInvalidCursor when idx is not a valid
// index of the current list.
func (c *Cursor) Set(idx int) {
	if idx < 0 || idx >= c.n {
		panic(fmt.Errorf("%w: set %d on list of %d", ErrInvalidCursor, idx, c.n))
	}
	c.idx = idx
}

// OnListChanged re-validates against a list of length n, clamping the
// index to the last row. An empty list makes the cursor inactive.
func (c *Cursor) OnListChanged(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	if n == 0 {
		c.idx = 0
		return
	}
	if c.idx > n-1 {
		c.idx = n - 1
	}
}

// OnQueryChanged moves back to the top match of a list of length n.
func (c *Cursor) OnQueryChanged(n int) {
	c.idx = 0
	c.OnListChanged(n)
}
