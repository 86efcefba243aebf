package encoding

import "testing"

func TestPackIDRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index uint32
		gen   uint32
	}{
		{name: "first", index: 0, gen: 1},
		{name: "reused_slot", index: 7, gen: 3},
		{name: "max", index: 0xFFFFFFFF, gen: 0xFFFFFFFF},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id := PackID(tt.index, tt.gen)
			index, gen := UnpackID(id)
			if index != tt.index || gen != tt.gen {
				t.Fatalf("got=(%d,%d) want (%d,%d)", index, gen, tt.index, tt.gen)
			}
		})
	}
}

func TestPackIDNonZero(t *testing.T) {
	t.Parallel()

	if PackID(0, 1) == 0 {
		t.Fatalf("generation 1 must never pack to zero")
	}
	if PackID(5, 1) == PackID(5, 2) {
		t.Fatalf("generations must produce distinct ids")
	}
}

func TestBytes64(t *testing.T) {
	t.Parallel()

	if got := FromBytes64(ToBytes64(0xDEADBEEF01)); got != 0xDEADBEEF01 {
		t.Fatalf("roundtrip mismatch: %x", got)
	}
}
