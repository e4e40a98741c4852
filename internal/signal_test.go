package internal

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestSignal(reverse bool) *Signal {
	return New("test", reverse, zerolog.Nop())
}

func nothing(sender any) (any, error) { return nil, nil }

func TestSlotCompare(t *testing.T) {
	t.Run("priority then uid", func(t *testing.T) {
		s := newTestSignal(false)

		a, _ := s.Add(nothing, 1, Any)
		b, _ := s.Add(nothing, 2, Any)
		c, _ := s.Add(nothing, 2, Any)

		assert.Negative(t, a.Compare(b))
		assert.Positive(t, b.Compare(a))
		assert.Negative(t, b.Compare(c))
		assert.Zero(t, b.Compare(b))
	})

	t.Run("reverse flips priority only", func(t *testing.T) {
		s := newTestSignal(true)

		a, _ := s.Add(nothing, 1, Any)
		b, _ := s.Add(nothing, 2, Any)
		c, _ := s.Add(nothing, 2, Any)

		assert.Positive(t, a.Compare(b))
		assert.Negative(t, b.Compare(c))
	})
}

func TestSignalOrder(t *testing.T) {
	t.Run("interleaved adds and deletes keep the sequence sorted", func(t *testing.T) {
		s := newTestSignal(false)

		var kept []*Slot
		for i, p := range []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3} {
			sl, err := s.Add(nothing, p, Any)
			assert.NoError(t, err)

			if i%3 == 0 {
				assert.NoError(t, s.Delete(sl))
			} else {
				kept = append(kept, sl)
			}
		}

		slots := s.Slots()
		assert.Len(t, slots, len(kept))
		for i := 1; i < len(slots); i++ {
			assert.Negative(t, slots[i-1].Compare(slots[i]))
		}
	})

	t.Run("uid zero is a valid slot", func(t *testing.T) {
		s := newTestSignal(false)

		sl, _ := s.Add(nothing, 0, Any)
		assert.Zero(t, sl.UID())

		found, err := s.FindUID(0)
		assert.NoError(t, err)
		assert.Same(t, sl, found)
	})
}

func TestSignalMatching(t *testing.T) {
	t.Run("any matches in both directions", func(t *testing.T) {
		s := newTestSignal(false)

		anySlot, _ := s.Add(nothing, 0, Any)
		xSlot, _ := s.Add(nothing, 0, "x")

		assert.True(t, anySlot.matches("x"))
		assert.True(t, anySlot.matches(Any))
		assert.True(t, xSlot.matches("x"))
		assert.True(t, xSlot.matches(Any))
		assert.False(t, xSlot.matches("y"))
	})

	t.Run("nil is an ordinary listener value", func(t *testing.T) {
		s := newTestSignal(false)

		nilSlot, _ := s.Add(nothing, 0, nil)
		assert.True(t, nilSlot.matches(nil))
		assert.False(t, nilSlot.matches("x"))
		assert.True(t, nilSlot.matches(Any))
	})

	t.Run("typed listeners compare by value", func(t *testing.T) {
		type key struct{ a, b int }
		s := newTestSignal(false)

		sl, _ := s.Add(nothing, 0, key{1, 2})
		assert.True(t, sl.matches(key{1, 2}))
		assert.False(t, sl.matches(key{2, 1}))
	})
}

func TestSharedRegistry(t *testing.T) {
	t.Run("one signal per name", func(t *testing.T) {
		a := Shared("registry-a", func() *Signal { return newTestSignal(false) })
		b := Shared("registry-a", func() *Signal { return newTestSignal(true) })

		assert.Same(t, a, b)
		assert.False(t, b.Reverse(), "first construction wins")
	})

	t.Run("names are independent", func(t *testing.T) {
		a := Shared("registry-b", func() *Signal { return newTestSignal(false) })
		c := Shared("registry-c", func() *Signal { return newTestSignal(false) })

		assert.NotSame(t, a, c)
	})
}

func TestCheckComparable(t *testing.T) {
	assert.NoError(t, checkComparable(nil))
	assert.NoError(t, checkComparable(Any))
	assert.NoError(t, checkComparable("x"))
	assert.NoError(t, checkComparable(42))
	assert.ErrorIs(t, checkComparable([]int{}), ErrNotComparable)
	assert.ErrorIs(t, checkComparable(map[string]int{}), ErrNotComparable)
	assert.ErrorIs(t, checkComparable(func() {}), ErrNotComparable)
}
