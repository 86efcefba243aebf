package geom

import (
	"math"

	"github.com/cespare/xxhash"

	"github.com/voidshard/roadgraph/internal/encoding"
)

// Hash64 mixes the bit patterns of the given values
func Hash64(vals ...float64) uint64 {
	buf := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		buf = append(buf, encoding.ToBytes64(math.Float64bits(v))...)
	}
	return xxhash.Sum64(buf)
}

// Rand3 is a deterministic value in [0, 1) for the given inputs
func Rand3(x, y, z float64) float64 {
	return float64(Hash64(x, y, z)>>11) / float64(uint64(1)<<53)
}
