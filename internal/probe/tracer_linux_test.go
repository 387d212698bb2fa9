package probe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStatusFixture(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "status")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	old := statusPath
	statusPath = path
	t.Cleanup(func() { statusPath = old })
}

func TestTracerCheckNone(t *testing.T) {
	withStatusFixture(t, "Name:\ttest\nTracerPid:\t0\nUid:\t1000\n")
	assert.Equal(t, 0, tracerCheck())
}

func TestTracerCheckAttached(t *testing.T) {
	withStatusFixture(t, "Name:\ttest\nTracerPid:\t4242\n")
	assert.Equal(t, 1, tracerCheck())
}

func TestTracerCheckMissingField(t *testing.T) {
	withStatusFixture(t, "Name:\ttest\nUid:\t1000\n")
	assert.Equal(t, -1, tracerCheck())
}

func TestTracerCheckUnreadable(t *testing.T) {
	old := statusPath
	statusPath = filepath.Join(t.TempDir(), "does-not-exist")
	t.Cleanup(func() { statusPath = old })
	assert.Equal(t, -1, tracerCheck())
}

func TestTracerCheckLiveProcess(t *testing.T) {
	// Under a normal test run no tracer is attached; under a debugger this
	// test is expected to report it, so only assert the contract range.
	assert.Contains(t, []int{0, 1}, tracerCheck())
}
