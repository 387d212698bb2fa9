//go:build !amd64 && !arm64

package probe

const (
	backendLabel = "portable"

	// timingThreshold is in nanoseconds for the clock-backed counter.
	timingThreshold = 100000
)

func cycles() uint64 { return nanotime() }
