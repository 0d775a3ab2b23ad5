package cursor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func index(t *testing.T, c Cursor) int {
	t.Helper()
	idx, ok := c.Index()
	require.True(t, ok, "cursor should be active")
	return idx
}

func TestNavigate_Wraparound(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for start := 0; start < n; start++ {
			c := New(n)
			c.Set(start)
			for i := 0; i < n; i++ {
				c.NavigateDown()
			}
			assert.Equal(t, start, index(t, c), "down n=%d start=%d", n, start)

			for i := 0; i < n; i++ {
				c.NavigateUp()
			}
			assert.Equal(t, start, index(t, c), "up n=%d start=%d", n, start)
		}
	}
}

func TestNavigateDown_FromLastWrapsToZero(t *testing.T) {
	c := New(3)
	c.Set(2)
	c.NavigateDown()
	assert.Equal(t, 0, index(t, c))
}

func TestNavigateUp_FromZeroWrapsToLast(t *testing.T) {
	c := New(3)
	c.NavigateUp()
	assert.Equal(t, 2, index(t, c))
}

func TestMove_NoWrapClamps(t *testing.T) {
	c := New(3)
	c.Move(Up, false)
	assert.Equal(t, 0, index(t, c))

	c.Move(Down, false)
	c.Move(Down, false)
	c.Move(Down, false)
	assert.Equal(t, 2, index(t, c))

	c.Move(Down, true)
	assert.Equal(t, 0, index(t, c))
}

func TestOnListChanged_Clamps(t *testing.T) {
	for k := 0; k < 6; k++ {
		for newLen := 0; newLen <= k; newLen++ {
			c := New(6)
			c.Set(k)
			c.OnListChanged(newLen)
			if newLen == 0 {
				_, ok := c.Index()
				assert.False(t, ok)
				continue
			}
			assert.Equal(t, newLen-1, index(t, c), "k=%d newLen=%d", k, newLen)
		}
	}
}

func TestOnListChanged_KeepsPositionWhenStillValid(t *testing.T) {
	c := New(5)
	c.Set(2)
	c.OnListChanged(4)
	assert.Equal(t, 2, index(t, c))
	c.OnListChanged(10)
	assert.Equal(t, 2, index(t, c))
}

func TestOnQueryChanged_ResetsToTop(t *testing.T) {
	c := New(5)
	c.Set(4)
	c.OnQueryChanged(5)
	assert.Equal(t, 0, index(t, c))

	c.OnQueryChanged(0)
	assert.False(t, c.Active())
}

func TestInactive_NavigationIsNoop(t *testing.T) {
	c := New(0)
	c.NavigateUp()
	c.NavigateDown()
	c.Move(Down, false)
	_, ok := c.Index()
	assert.False(t, ok)

	c.OnListChanged(2)
	assert.Equal(t, 0, index(t, c))
}

func TestSet_OutOfRangePanics(t *testing.T) {
	c := New(2)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidCursor))
	}()
	c.Set(2)
}
