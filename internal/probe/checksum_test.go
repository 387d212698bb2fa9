package probe

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumReferenceVectors(t *testing.T) {
	assert.Equal(t, uint32(0), Checksum(nil))
	assert.Equal(t, uint32(0), Checksum([]byte{}))
	assert.Equal(t, uint32(0), Checksum([]byte{0x00}))
	assert.Equal(t, uint32(1), Checksum([]byte{0x01}))
	// 0 -> rotl(0,1)^1 = 1 -> rotl(1,1)^1 = 3
	assert.Equal(t, uint32(3), Checksum([]byte{0x01, 0x01}))
}

func TestChecksumDeterministic(t *testing.T) {
	buf := make([]byte, 257)
	for i := range buf {
		buf[i] = byte(i * 31)
	}
	first := Checksum(buf)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Checksum(buf))
	}
}

func TestChecksumTamperEvidence(t *testing.T) {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = byte(i)
	}
	baseline := Checksum(buf)

	// Flipping any single byte must change the digest: each step is
	// injective in the running value.
	for i := range buf {
		buf[i] ^= 0xFF
		if got := Checksum(buf); got == baseline {
			t.Fatalf("flip at %d left digest unchanged (0x%08x)", i, got)
		}
		buf[i] ^= 0xFF
	}
	require.Equal(t, baseline, Checksum(buf))
}

func TestChecksumRange(t *testing.T) {
	assert.Equal(t, uint32(0), ChecksumRange(0, 16))
	assert.Equal(t, uint32(0), ChecksumRange(1, 0))

	buf := []byte("integrity is a property, not a promise")
	want := Checksum(buf)
	got := ChecksumRange(uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	assert.Equal(t, want, got)
}
