package selfguard

import (
	"encoding/binary"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"

	"github.com/mrwhite4939/selfguard/events"
	"github.com/mrwhite4939/selfguard/internal/probe"
	"github.com/mrwhite4939/selfguard/internal/textregion"
)

// baseline is the single piece of mutable per-session state. It is written
// only under the manager mutex and wiped at shutdown.
type baseline struct {
	codeChecksum uint32
	initialized  uint32
	baselineTSC  uint64
}

// selfDigest digests the record minus the digest field itself — the digest
// cannot cover its own storage and stay stable across recomputation. This
// is the degraded memory check used when no code region is available.
func (b *baseline) selfDigest() uint32 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:], b.initialized)
	binary.LittleEndian.PutUint64(buf[4:], b.baselineTSC)
	return probe.Checksum(buf[:])
}

// wipe zeroes the record byte by byte. The KeepAlive pins the record as
// observed after the stores, so the wipe cannot be elided.
func (b *baseline) wipe() {
	bytes := unsafe.Slice((*byte)(unsafe.Pointer(b)), unsafe.Sizeof(*b))
	for i := range bytes {
		bytes[i] = 0
	}
	runtime.KeepAlive(b)
}

// manager owns the baseline record, the verdict, and the orchestration of
// integrity checks. The mutex covers every read-modify-publish sequence so
// concurrent sweeps cannot interleave partial findings; verdict reads stay
// lock-free through the atomic.
type manager struct {
	mu      sync.Mutex
	verdict atomic.Uint32
	base    baseline
	backend probe.Backend
	locate  textregion.Locator
	events  *events.Dispatcher
	session string
}

func newManager(backend probe.Backend, locate textregion.Locator, disp *events.Dispatcher) (*manager, error) {
	if backend == nil || locate == nil || disp == nil {
		return nil, ErrInit
	}
	m := &manager{
		backend: backend,
		locate:  locate,
		events:  disp,
		session: uuid.NewString(),
	}
	m.base.baselineTSC = backend.Cycles()
	m.base.initialized = 1
	m.verdict.Store(uint32(Safe))
	m.emit(events.EventTypeInitialized, events.SeverityInfo, "monitoring session created", map[string]interface{}{
		"implementation": backend.Label(),
		"baseline_tsc":   m.base.baselineTSC,
	})
	return m, nil
}

func (m *manager) emit(typ events.EventType, sev events.Severity, msg string, data map[string]interface{}) {
	m.events.Emit(events.Event{
		Type:      typ,
		SessionID: m.session,
		Severity:  sev,
		Message:   msg,
		Data:      data,
	})
}

// snapshot replaces the code checksum with the digest of the current code
// region, or of the baseline record itself when no region is available.
// It never touches the verdict: a process already judged Compromised must
// not launder itself by re-snapshotting.
func (m *manager) snapshot() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.base.initialized == 0 {
		return ErrNotInitialized
	}

	region := m.locate()
	var sum uint32
	if region.Available {
		if region.Start == 0 || region.Length == 0 {
			return ErrInternal
		}
		sum = probe.ChecksumRange(region.Start, region.Length)
	} else {
		sum = m.base.selfDigest()
	}
	m.base.codeChecksum = sum

	m.emit(events.EventTypeSnapshotTaken, events.SeverityInfo, "code baseline recorded", map[string]interface{}{
		"region_available": region.Available,
		"checksum":         sum,
	})
	return nil
}

// check runs the selected probes and applies the transition rule. Success
// means the probes ran; what they found is read separately via state().
func (m *manager) check(mask Check) error {
	if mask == 0 {
		return ErrInternal
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.base.initialized == 0 {
		return ErrNotInitialized
	}

	suspicious := false
	compromised := false
	var reason string

	if mask&CheckDebugger != 0 {
		// -1 (unavailable) is treated as not-suspicious; the remaining
		// probes still run.
		if m.backend.LowLevelCheck() >= 1 {
			compromised = true
			reason = "tracer attached"
		}
	}
	if mask&CheckTiming != 0 {
		if m.backend.TimingCheck() >= 1 {
			suspicious = true
			if reason == "" {
				reason = "timing probe exceeded threshold"
			}
		}
	}
	if mask&CheckMemory != 0 {
		region := m.locate()
		if region.Available {
			if probe.ChecksumRange(region.Start, region.Length) != m.base.codeChecksum {
				compromised = true
				reason = "code region checksum mismatch"
			}
		} else if m.base.selfDigest() != m.base.codeChecksum {
			// No code coverage behind this signal, so it only warns.
			suspicious = true
			if reason == "" {
				reason = "baseline record digest mismatch"
			}
		}
	}
	// CheckStack is reserved.

	switch {
	case compromised:
		m.storeVerdict(Compromised, reason)
	case suspicious:
		m.promoteWarning(reason)
	}

	m.emit(events.EventTypeCheckCompleted, events.SeverityInfo, "integrity sweep completed", map[string]interface{}{
		"mask":        uint32(mask),
		"compromised": compromised,
		"suspicious":  suspicious,
	})
	return nil
}

// storeVerdict publishes Compromised unconditionally; it is the maximum of
// the order, so the store preserves monotonicity.
func (m *manager) storeVerdict(v Verdict, reason string) {
	old := clampVerdict(m.verdict.Swap(uint32(v)))
	if old != v {
		m.emit(events.EventTypeVerdictChanged, events.SeverityCritical, reason, map[string]interface{}{
			"from": old.String(),
			"to":   v.String(),
		})
	}
}

// promoteWarning raises Safe to Warning and leaves Warning or Compromised
// in place, enforcing monotonicity without an unconditional store.
func (m *manager) promoteWarning(reason string) {
	if m.verdict.CompareAndSwap(uint32(Safe), uint32(Warning)) {
		m.emit(events.EventTypeVerdictChanged, events.SeverityWarning, reason, map[string]interface{}{
			"from": Safe.String(),
			"to":   Warning.String(),
		})
	}
}

// state is the lock-free verdict read, clamped fail-secure.
func (m *manager) state() Verdict {
	return clampVerdict(m.verdict.Load())
}

// detectTracer is the fast path behind DetectDebugger: tracer probe only,
// no verdict update. An unavailable probe reads as "none detected".
func (m *manager) detectTracer() int {
	if m.backend.LowLevelCheck() >= 1 {
		return 1
	}
	return 0
}

// close publishes Compromised first, so any reader racing past shutdown
// observes a fail-secure value, then wipes the baseline.
func (m *manager) close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.base.initialized == 0 {
		return ErrNotInitialized
	}
	m.verdict.Store(uint32(Compromised))
	m.emit(events.EventTypeShutdown, events.SeverityInfo, "monitoring session destroyed", nil)
	m.base.wipe()
	return nil
}

// Info is a read-only diagnostic snapshot of a live session.
type Info struct {
	Implementation  string
	SessionID       string
	Verdict         Verdict
	BaselineTSC     uint64
	CodeChecksum    uint32
	RegionAvailable bool
	RegionStart     uintptr
	RegionLength    uintptr
}

func (m *manager) info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	region := m.locate()
	return Info{
		Implementation:  m.backend.Label(),
		SessionID:       m.session,
		Verdict:         clampVerdict(m.verdict.Load()),
		BaselineTSC:     m.base.baselineTSC,
		CodeChecksum:    m.base.codeChecksum,
		RegionAvailable: region.Available,
		RegionStart:     region.Start,
		RegionLength:    region.Length,
	}
}
