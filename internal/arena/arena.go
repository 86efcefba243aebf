// Package arena provides generation tagged storage with stable IDs.
//
// Every ID packs a slot index with the slot's generation at insert time.
// Removing an entry bumps the generation so the old ID never resolves again,
// even when the slot is later reused for something else.
package arena

import (
	"fmt"

	"github.com/voidshard/roadgraph/internal/encoding"
)

var (
	// ErrOccupied is returned when restoring onto a live slot
	ErrOccupied = fmt.Errorf("arena slot is occupied")

	// ErrGeneration is returned when restoring an id whose generation doesn't
	// match the restored generation table
	ErrGeneration = fmt.Errorf("arena generation mismatch")
)

type slot[T any] struct {
	gen   uint32
	alive bool
	val   T
}

// bump moves to the next generation. Zero marks an invalid id so it is
// skipped when the counter wraps.
func (s *slot[T]) bump() {
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
}

// Arena holds values of T addressed by IDs of K.
// K is any uint64 based ID type so callers can keep their IDs distinct.
type Arena[K ~uint64, T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

// New returns an empty arena
func New[K ~uint64, T any]() *Arena[K, T] {
	return &Arena[K, T]{slots: []slot[T]{}, free: []uint32{}}
}

// Insert stores v and returns its ID
func (a *Arena[K, T]) Insert(v T) K {
	return a.InsertWith(func(K) T { return v })
}

// InsertWith reserves an ID and stores whatever fn builds for it. Handy for
// values that carry their own ID.
func (a *Arena[K, T]) InsertWith(fn func(K) T) K {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{gen: 1})
	}

	s := &a.slots[index]
	id := K(encoding.PackID(index, s.gen))
	s.val = fn(id)
	s.alive = true
	a.count++
	return id
}

// Get returns the value for id, false if the id is stale or unknown
func (a *Arena[K, T]) Get(id K) (T, bool) {
	s := a.lookup(id)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.val, true
}

// Contains returns if id refers to a live entry
func (a *Arena[K, T]) Contains(id K) bool {
	return a.lookup(id) != nil
}

// Set overwrites the value of a live entry
func (a *Arena[K, T]) Set(id K, v T) bool {
	s := a.lookup(id)
	if s == nil {
		return false
	}
	s.val = v
	return true
}

// Remove deletes id returning the value it held
func (a *Arena[K, T]) Remove(id K) (T, bool) {
	var zero T

	s := a.lookup(id)
	if s == nil {
		return zero, false
	}

	v := s.val
	s.val = zero
	s.alive = false
	s.bump()

	index, _ := encoding.UnpackID(uint64(id))
	a.free = append(a.free, index)
	a.count--
	return v, true
}

// Len is the number of live entries
func (a *Arena[K, T]) Len() int {
	return a.count
}

// IDs returns all live ids in slot order
func (a *Arena[K, T]) IDs() []K {
	ids := make([]K, 0, a.count)
	for i := range a.slots {
		if a.slots[i].alive {
			ids = append(ids, K(encoding.PackID(uint32(i), a.slots[i].gen)))
		}
	}
	return ids
}

// Each calls fn for every live entry in slot order. fn must not insert or
// remove entries.
func (a *Arena[K, T]) Each(fn func(K, T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.alive {
			continue
		}
		fn(K(encoding.PackID(uint32(i), s.gen)), s.val)
	}
}

// Generations returns the generation counter of every slot. Together with
// the live entries this is everything needed to rebuild an equivalent arena.
func (a *Arena[K, T]) Generations() []uint32 {
	gens := make([]uint32, len(a.slots))
	for i := range a.slots {
		gens[i] = a.slots[i].gen
	}
	return gens
}

// Restore resets the arena to empty slots with the given generations.
// Follow with InsertAt for each live entry.
func (a *Arena[K, T]) Restore(gens []uint32) {
	a.slots = make([]slot[T], len(gens))
	a.free = make([]uint32, 0, len(gens))
	a.count = 0
	for i := len(gens) - 1; i >= 0; i-- {
		gen := gens[i]
		if gen == 0 {
			gen = 1
		}
		a.slots[i] = slot[T]{gen: gen}
		a.free = append(a.free, uint32(i))
	}
}

// InsertAt places v under an exact id, used when restoring a snapshot.
func (a *Arena[K, T]) InsertAt(id K, v T) error {
	index, gen := encoding.UnpackID(uint64(id))
	for int(index) >= len(a.slots) {
		a.free = append(a.free, uint32(len(a.slots)))
		a.slots = append(a.slots, slot[T]{gen: 1})
	}

	s := &a.slots[index]
	if s.alive {
		return fmt.Errorf("%w: %d", ErrOccupied, index)
	}
	if s.gen != gen {
		return fmt.Errorf("%w: slot %d has %d, id has %d", ErrGeneration, index, s.gen, gen)
	}

	for i, f := range a.free {
		if f == index {
			a.free = append(a.free[:i], a.free[i+1:]...)
			break
		}
	}

	s.val = v
	s.alive = true
	a.count++
	return nil
}

// Clear drops every entry. Generations survive so old ids stay stale.
func (a *Arena[K, T]) Clear() {
	var zero T
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		s := &a.slots[i]
		if s.alive {
			s.alive = false
			s.val = zero
			s.bump()
		}
		a.free = append(a.free, uint32(i))
	}
	a.count = 0
}

func (a *Arena[K, T]) lookup(id K) *slot[T] {
	index, gen := encoding.UnpackID(uint64(id))
	if gen == 0 || int(index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[index]
	if !s.alive || s.gen != gen {
		return nil
	}
	return s
}
