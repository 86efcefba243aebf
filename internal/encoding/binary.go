package encoding

import (
	"encoding/binary"
)

// ToBytes64 turns a uint64 into []byte len 8
func ToBytes64(in uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, in)
	return buf
}

// FromBytes64 turns []byte into uint64
func FromBytes64(data []byte) uint64 {
	return binary.BigEndian.Uint64(data)
}

// Split64 uint64 to two uint32 (high bits first)
func Split64(in uint64) (uint32, uint32) {
	return uint32(in >> 32), uint32(in)
}

// Merge32 two uint32 to uint64
func Merge32(a, b uint32) uint64 {
	return (uint64(a) << 32) + uint64(b)
}

// PackID builds an ID where the generation holds the significant bits.
// A zero generation never occurs for a live entry so zero is never a valid ID.
func PackID(index, gen uint32) uint64 {
	return Merge32(gen, index)
}

// UnpackID is the reverse of PackID
func UnpackID(id uint64) (uint32, uint32) {
	gen, index := Split64(id)
	return index, gen
}
