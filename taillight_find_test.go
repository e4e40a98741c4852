package taillight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	t.Run("by uid", func(t *testing.T) {
		s := NewUnshared("find")

		slot1, _ := s.Add(noop)
		slot2, _ := s.Add(noop)

		found, err := s.FindUID(slot1.UID())
		assert.NoError(t, err)
		assert.Equal(t, slot1.UID(), found.UID())

		found, err = s.FindUID(slot2.UID())
		assert.NoError(t, err)
		assert.Equal(t, slot2.UID(), found.UID())

		_, err = s.FindUID(slot2.UID() + 1)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("by function", func(t *testing.T) {
		s := NewUnshared("find")

		fn := SlotFunc(noop)
		slot1, _ := s.Add(fn)
		slot2, _ := s.Add(fn, WithPriority(2))
		s.Add(func(sender any) (any, error) { return nil, nil })

		found, err := s.FindFunc(fn)
		assert.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Equal(t, slot1.UID(), found[0].UID())
		assert.Equal(t, slot2.UID(), found[1].UID())
	})

	t.Run("by function not found", func(t *testing.T) {
		s := NewUnshared("find")
		s.Add(func(sender any) (any, error) { return nil, nil })

		_, err := s.FindFunc(noop)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("by listener is exact", func(t *testing.T) {
		s := NewUnshared("find")

		xSlot, _ := s.Add(noop, WithListener("x"))
		s.Add(noop, WithListener("y"))
		anySlot, _ := s.Add(noop)

		found, err := s.FindListener("x")
		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, xSlot.UID(), found[0].UID())

		// Lookup does not use the dispatch relation: Any finds only
		// slots registered with Any, even though Call(Any) runs all
		// three.
		found, err = s.FindListener(Any)
		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, anySlot.UID(), found[0].UID())

		_, err = s.FindListener("z")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("reads are idempotent", func(t *testing.T) {
		s := NewUnshared("find")

		slot, _ := s.Add(noop, WithListener("x"))

		for i := 0; i < 3; i++ {
			found, err := s.FindUID(slot.UID())
			assert.NoError(t, err)
			assert.Equal(t, slot.UID(), found.UID())

			byListener, err := s.FindListener("x")
			assert.NoError(t, err)
			assert.Len(t, byListener, 1)

			byFunc, err := s.FindFunc(noop)
			assert.NoError(t, err)
			assert.Len(t, byFunc, 1)
		}
	})

	t.Run("lookups do not mutate order", func(t *testing.T) {
		s := NewUnshared("find")

		s.Add(noop, WithPriority(2))
		s.Add(noop, WithPriority(1))

		before := s.Slots()
		s.FindFunc(noop)
		s.FindListener(Any)
		after := s.Slots()

		assert.Equal(t, len(before), len(after))
		for i := range before {
			assert.Equal(t, before[i].UID(), after[i].UID())
		}
	})
}
