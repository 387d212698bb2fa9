package selfguard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetMonitor tears down any session a previous test left behind. The
// facade owns process-wide state, so facade tests serialize through it.
func resetMonitor() {
	Shutdown() //nolint:errcheck // ErrNotInitialized is the desired state
}

func TestUninitializedAccess(t *testing.T) {
	resetMonitor()

	assert.ErrorIs(t, Snapshot(), ErrNotInitialized)
	assert.ErrorIs(t, CheckIntegrity(CheckAll), ErrNotInitialized)
	assert.ErrorIs(t, Shutdown(), ErrNotInitialized)
	assert.Equal(t, -1, DetectDebugger())
	assert.Equal(t, Compromised, State())

	_, err := MonitorInfo()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLifecycleRoundTrip(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	assert.Equal(t, Safe, State())
	require.NoError(t, Snapshot())
	require.NoError(t, Shutdown())
	assert.Equal(t, Compromised, State())

	// A second session starts fresh.
	require.NoError(t, Init())
	assert.Equal(t, Safe, State())
	require.NoError(t, Shutdown())
}

func TestDoubleInitRejected(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	defer Shutdown()
	assert.ErrorIs(t, Init(), ErrAlreadyInitialized)
}

func TestConcurrentInitExactlyOneWinner(t *testing.T) {
	resetMonitor()

	const goroutines = 16
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Init()
		}(i)
	}
	wg.Wait()
	defer Shutdown()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyInitialized)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, Safe, State())
}

func TestZeroMaskLeavesVerdictAlone(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	defer Shutdown()
	require.NoError(t, Snapshot())

	assert.ErrorIs(t, CheckIntegrity(0), ErrInternal)
	assert.Equal(t, Safe, State())
}

func TestCheckIntegritySweep(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	defer Shutdown()
	require.NoError(t, Snapshot())

	// Debugger and memory probes are deterministic on a quiet test run;
	// the timing probe is exercised separately with a stub backend.
	require.NoError(t, CheckIntegrity(CheckDebugger|CheckMemory))
	assert.Equal(t, Safe, State())
}

func TestDetectDebuggerFastPath(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	defer Shutdown()

	got := DetectDebugger()
	assert.Contains(t, []int{0, 1}, got)
	// The fast path never promotes the verdict.
	assert.Equal(t, Safe, State())
}

func TestImplementationLabel(t *testing.T) {
	assert.Contains(t, []string{"x86_64-native", "arm64-native", "portable"}, Implementation())
}

func TestMonitorInfo(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	defer Shutdown()
	require.NoError(t, Snapshot())

	info, err := MonitorInfo()
	require.NoError(t, err)
	assert.Equal(t, Implementation(), info.Implementation)
	assert.NotEmpty(t, info.SessionID)
	assert.Equal(t, Safe, info.Verdict)
	if info.RegionAvailable {
		assert.NotZero(t, info.RegionStart)
		assert.NotZero(t, info.RegionLength)
		assert.NotZero(t, info.CodeChecksum)
	}
}

func TestSessionIDsDiffer(t *testing.T) {
	resetMonitor()

	require.NoError(t, Init())
	first, err := MonitorInfo()
	require.NoError(t, err)
	require.NoError(t, Shutdown())

	require.NoError(t, Init())
	defer Shutdown()
	second, err := MonitorInfo()
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
}
