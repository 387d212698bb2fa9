package probe

import (
	"math/bits"
	"unsafe"
)

// Checksum computes the rotate-XOR digest of data: starting from zero, each
// byte folds in as h = rotl32(h, 1) ^ b. The digest is a fast tamper
// tripwire, not a MAC. An empty input digests to zero.
func Checksum(data []byte) uint32 {
	var h uint32
	for _, b := range data {
		h = bits.RotateLeft32(h, 1) ^ uint32(b)
	}
	return h
}

// ChecksumRange digests length bytes of raw memory beginning at start.
// A zero start or zero length returns 0. The caller is responsible for the
// range being mapped and readable.
func ChecksumRange(start, length uintptr) uint32 {
	if start == 0 || length == 0 {
		return 0
	}
	return Checksum(unsafe.Slice((*byte)(unsafe.Pointer(start)), length))
}
