// Package selfguard is an in-process runtime integrity monitor.
//
// A host application links the monitor, takes a baseline snapshot of its
// own executable code and timing environment, and then periodically asks
// whether the process has been tampered with — by an attached debugger, by
// code patching, or by execution-time instrumentation. The answer is a
// coarse tri-valued verdict (Safe, Warning, Compromised) that the host
// uses to decide whether to continue, alert, or abort; the monitor itself
// never terminates the process.
//
// # Lifecycle
//
//	if err := selfguard.Init(); err != nil { ... }
//	defer selfguard.Shutdown()
//
//	if err := selfguard.Snapshot(); err != nil { ... }
//
//	_ = selfguard.CheckIntegrity(selfguard.CheckAll)
//	if selfguard.State() != selfguard.Safe {
//	    // alert or abort
//	}
//
// Init records the baseline cycle value and publishes a Safe verdict but
// takes no code checksum; until the first Snapshot, the memory check trips
// by design (default-deny). Snapshot never resets the verdict — a process
// already judged Compromised cannot launder itself by re-snapshotting.
// Before Init and after Shutdown, State reports Compromised (fail-secure).
//
// The verdict is monotone within a session: Safe may be promoted to
// Warning or Compromised, Warning only to Compromised. Only a full
// Shutdown/Init round trip starts over.
//
// # Concurrency
//
// The monitor is a passive library with no threads of its own; host
// threads may call every operation concurrently. Verdict reads are
// lock-free. The optional Watcher drives periodic sweeps on one goroutine
// the host starts and cancels through a context.
//
// Detection is best-effort tamper evidence, not prevention: an attacker
// who can statically patch the monitor itself is out of scope, as are
// kernel-mode and hypervisor-level attackers.
package selfguard
