//go:build linux && !amd64 && !arm64

package textregion

// The program-header walk assumes 64-bit little-endian auxv entries; on
// other Linux targets only the memory-map environment is wired.
func locateFromPhdrs() Region { return Region{} }
