// Package probe implements the hardware detection primitives behind the
// integrity monitor: the cycle counter, the tracer check, the timing probe,
// and the memory checksum. All four are stateless and re-entrant.
//
// The hardware-dependent pieces are selected at build time. On amd64 the
// cycle counter reads the TSC; on arm64 it reads the virtual counter; on
// every other architecture it falls back to a monotonic clock in
// nanoseconds. The tracer check reads the TracerPid field from
// /proc/self/status on Linux and reports "unavailable" elsewhere.
package probe

// Backend is the capability set exposed to the state manager. Exactly one
// host backend is linked per build; tests substitute their own.
type Backend interface {
	// Cycles returns a monotonic non-decreasing counter value. Absolute
	// magnitude is backend-dependent; only deltas are meaningful.
	Cycles() uint64

	// LowLevelCheck reports whether an execution tracer is attached:
	// 1 if a tracer is recorded, 0 if none, -1 if the check is
	// unavailable on this platform.
	LowLevelCheck() int

	// TimingCheck runs the fixed micro-workload and reports 1 if it took
	// longer than the backend threshold, 0 otherwise.
	TimingCheck() int

	// Label identifies the backend variant, e.g. "x86_64-native".
	Label() string
}

type hostBackend struct{}

func (hostBackend) Cycles() uint64     { return cycles() }
func (hostBackend) LowLevelCheck() int { return tracerCheck() }
func (hostBackend) TimingCheck() int   { return timingCheck(cycles, timingThreshold) }
func (hostBackend) Label() string      { return backendLabel }

var defaultBackend Backend = hostBackend{}

// Default returns the backend linked into this build.
func Default() Backend { return defaultBackend }
