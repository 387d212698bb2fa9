package probe

import (
	"os"
	"strconv"
	"strings"
)

// statusPath is a var so tests can point the check at a fixture.
var statusPath = "/proc/self/status"

// tracerCheck reads the TracerPid field from the process status file.
// A non-zero tracer PID means a ptrace-style debugger or instrumentation
// tool is attached. Returns -1 if the field cannot be read.
func tracerCheck() int {
	data, err := os.ReadFile(statusPath)
	if err != nil {
		return -1
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "TracerPid:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return -1
		}
		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			return -1
		}
		if pid > 0 {
			return 1
		}
		return 0
	}
	return -1
}
