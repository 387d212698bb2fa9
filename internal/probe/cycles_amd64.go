package probe

const (
	backendLabel = "x86_64-native"

	// timingThreshold is in TSC cycles. The ten-iteration workload runs in
	// a few dozen cycles on any contemporary core; anything past a
	// thousand means the probe was interrupted or single-stepped.
	timingThreshold = 1000
)

func cycles() uint64 { return rdtsc() }

// rdtsc reads the time-stamp counter. Implemented in cycles_amd64.s.
func rdtsc() uint64
