package arena

import (
	"errors"
	"math"
	"testing"

	"github.com/voidshard/roadgraph/internal/encoding"
)

type testID uint64

func TestInsertGetRemove(t *testing.T) {
	t.Parallel()

	a := New[testID, string]()
	id := a.Insert("a")

	got, ok := a.Get(id)
	if !ok || got != "a" {
		t.Fatalf("got=%q ok=%v", got, ok)
	}
	if a.Len() != 1 {
		t.Fatalf("len=%d want 1", a.Len())
	}

	v, ok := a.Remove(id)
	if !ok || v != "a" {
		t.Fatalf("remove got=%q ok=%v", v, ok)
	}
	if _, ok := a.Get(id); ok {
		t.Fatalf("stale id still resolves")
	}
	if _, ok := a.Remove(id); ok {
		t.Fatalf("double remove succeeded")
	}
	if a.Len() != 0 {
		t.Fatalf("len=%d want 0", a.Len())
	}
}

func TestSlotReuseNeverReusesID(t *testing.T) {
	t.Parallel()

	a := New[testID, int]()
	first := a.Insert(1)
	a.Remove(first)
	second := a.Insert(2)

	if first == second {
		t.Fatalf("removed id %d was handed out again", first)
	}
	if a.Contains(first) {
		t.Fatalf("old id resolves to the new entry")
	}
	if v, _ := a.Get(second); v != 2 {
		t.Fatalf("got=%d want 2", v)
	}
}

func TestZeroIDInvalid(t *testing.T) {
	t.Parallel()

	a := New[testID, int]()
	a.Insert(1)
	if a.Contains(0) {
		t.Fatalf("zero id must never resolve")
	}
}

func TestInsertWithSeesOwnID(t *testing.T) {
	t.Parallel()

	type entry struct{ id testID }
	a := New[testID, entry]()
	id := a.InsertWith(func(id testID) entry { return entry{id: id} })

	got, _ := a.Get(id)
	if got.id != id {
		t.Fatalf("got=%d want %d", got.id, id)
	}
}

func TestEachAndIDsInSlotOrder(t *testing.T) {
	t.Parallel()

	a := New[testID, int]()
	ids := []testID{a.Insert(0), a.Insert(1), a.Insert(2)}
	a.Remove(ids[1])

	seen := []int{}
	a.Each(func(_ testID, v int) { seen = append(seen, v) })
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 2 {
		t.Fatalf("each=%v", seen)
	}

	got := a.IDs()
	if len(got) != 2 || got[0] != ids[0] || got[1] != ids[2] {
		t.Fatalf("ids=%v", got)
	}
}

func TestRestoreKeepsStaleIDsStale(t *testing.T) {
	t.Parallel()

	a := New[testID, string]()
	keep := a.Insert("keep")
	gone := a.Insert("gone")
	a.Remove(gone)

	b := New[testID, string]()
	b.Restore(a.Generations())
	if err := b.InsertAt(keep, "keep"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Contains(gone) {
		t.Fatalf("removed id resolves after restore")
	}
	fresh := b.Insert("fresh")
	if fresh == gone || fresh == keep {
		t.Fatalf("restored arena reused id %d", fresh)
	}
	if b.Len() != 2 {
		t.Fatalf("len=%d want 2", b.Len())
	}
}

func TestInsertAtErrors(t *testing.T) {
	t.Parallel()

	a := New[testID, int]()
	id := a.Insert(1)

	if err := a.InsertAt(id, 2); !errors.Is(err, ErrOccupied) {
		t.Fatalf("err=%v want ErrOccupied", err)
	}

	a.Remove(id)
	if err := a.InsertAt(id, 2); !errors.Is(err, ErrGeneration) {
		t.Fatalf("err=%v want ErrGeneration", err)
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	a := New[testID, int]()
	id := a.Insert(1)
	a.Insert(2)
	a.Clear()

	if a.Len() != 0 || a.Contains(id) {
		t.Fatalf("clear left entries behind")
	}
	if next := a.Insert(3); next == id {
		t.Fatalf("clear allowed id reuse")
	}
}

func TestGenerationWrapSkipsZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		retire func(a *Arena[testID, string], id testID)
	}{
		{"remove", func(a *Arena[testID, string], id testID) { a.Remove(id) }},
		{"clear", func(a *Arena[testID, string], _ testID) { a.Clear() }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New[testID, string]()
			a.Restore([]uint32{math.MaxUint32})
			last := testID(encoding.PackID(0, math.MaxUint32))
			if err := a.InsertAt(last, "old"); err != nil {
				t.Fatalf("insert at: %v", err)
			}

			tt.retire(a, last)
			if gens := a.Generations(); gens[0] != 1 {
				t.Fatalf("generation got=%d want 1", gens[0])
			}

			id := a.Insert("new")
			got, ok := a.Get(id)
			if !ok || got != "new" {
				t.Fatalf("got=%q,%v for %d", got, ok, id)
			}
			if _, ok := a.Get(last); ok {
				t.Fatalf("retired id still resolves")
			}
		})
	}
}
