package selfguard

import (
	"sync"
	"sync/atomic"

	"github.com/mrwhite4939/selfguard/events"
	"github.com/mrwhite4939/selfguard/internal/probe"
	"github.com/mrwhite4939/selfguard/internal/textregion"
)

// The monitor keeps exactly one live session per process. The lifecycle
// mutex serializes Init/Shutdown; the atomic pointer keeps State and
// DetectDebugger lock-free even against a concurrent lifecycle change.
var (
	lifecycle  sync.Mutex
	current    atomic.Pointer[manager]
	dispatcher = events.NewDispatcher()
)

// Init creates the monitoring session: records the baseline cycle value,
// assigns a session ID, and publishes a Safe verdict. No code checksum is
// taken here — call Snapshot to establish the memory baseline; until then
// the memory check trips by design.
//
// Returns ErrAlreadyInitialized if a session is live.
func Init() error {
	lifecycle.Lock()
	defer lifecycle.Unlock()
	if current.Load() != nil {
		return ErrAlreadyInitialized
	}
	m, err := newManager(probe.Default(), textregion.Locate, dispatcher)
	if err != nil {
		return err
	}
	current.Store(m)
	return nil
}

// Snapshot records the digest of the current code region as the baseline
// the memory check compares against. It does not reset the verdict.
//
// Returns ErrNotInitialized without a live session, ErrInternal if the
// locator produced a nonsensical region.
func Snapshot() error {
	m := current.Load()
	if m == nil {
		return ErrNotInitialized
	}
	return m.snapshot()
}

// CheckIntegrity runs the probes selected by mask and applies the verdict
// transition rule. A nil error means the probes ran, not that they found
// nothing; read the outcome with State.
//
// Returns ErrNotInitialized without a live session and ErrInternal for a
// zero mask (the verdict is untouched in both cases).
func CheckIntegrity(mask Check) error {
	m := current.Load()
	if m == nil {
		return ErrNotInitialized
	}
	return m.check(mask)
}

// DetectDebugger is the fast path: it consults the tracer probe only and
// never updates the verdict. Returns 1 if a tracer is attached, 0 if none
// was detected (or the probe is unavailable), and -1 without a live
// session.
func DetectDebugger() int {
	m := current.Load()
	if m == nil {
		return -1
	}
	return m.detectTracer()
}

// State returns the current verdict. Lock-free. Before Init and after
// Shutdown it reports Compromised, as it does for any out-of-range stored
// value.
func State() Verdict {
	m := current.Load()
	if m == nil {
		return Compromised
	}
	return m.state()
}

// Shutdown publishes a Compromised verdict, wipes the baseline record, and
// destroys the session. A later Init starts a fresh session with a Safe
// verdict.
//
// Returns ErrNotInitialized without a live session.
func Shutdown() error {
	lifecycle.Lock()
	defer lifecycle.Unlock()
	m := current.Load()
	if m == nil {
		return ErrNotInitialized
	}
	err := m.close()
	current.Store(nil)
	return err
}

// Implementation identifies the detection backend linked into this build:
// "x86_64-native", "arm64-native", or "portable".
func Implementation() string {
	return probe.Default().Label()
}

// MonitorInfo returns a diagnostic snapshot of the live session.
func MonitorInfo() (Info, error) {
	m := current.Load()
	if m == nil {
		return Info{}, ErrNotInitialized
	}
	return m.info(), nil
}

// RegisterSink subscribes a sink to the monitor's event stream. Sinks
// survive Shutdown/Init round trips; events carry the session ID they
// belong to.
func RegisterSink(s events.Sink) {
	dispatcher.Register(s)
}
