package textregion

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// mapsPath is a var so tests can substitute a fixture file.
var mapsPath = "/proc/self/maps"

// maxMapLines bounds the parse; a process with more mappings than this is
// not going to hide its text past the cutoff.
const maxMapLines = 4096

// Locate returns the executable text extent of this process. The memory
// map is the primary source; the program-header walk backs it up when the
// map cannot be read.
func Locate() Region {
	if r := locateFromMaps(); r.Available {
		return r
	}
	return locateFromPhdrs()
}

func locateFromMaps() Region {
	f, err := os.Open(mapsPath)
	if err != nil {
		return Region{}
	}
	defer f.Close()
	return parseMaps(f)
}

// parseMaps scans memory-map lines of the form "start-end perms ..." and
// returns the first region that is readable and executable. Malformed
// lines are skipped.
func parseMaps(r io.Reader) Region {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 512), 4096)
	for lines := 0; lines < maxMapLines && sc.Scan(); lines++ {
		start, end, perms, ok := parseMapLine(sc.Text())
		if !ok {
			continue
		}
		if perms[0] == 'r' && strings.ContainsRune(perms, 'x') {
			return Region{Start: start, Length: end - start, Available: true}
		}
	}
	return Region{}
}

func parseMapLine(line string) (start, end uintptr, perms string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[1] == "" {
		return 0, 0, "", false
	}
	dash := strings.IndexByte(fields[0], '-')
	if dash < 0 {
		return 0, 0, "", false
	}
	lo, err := strconv.ParseUint(fields[0][:dash], 16, 64)
	if err != nil {
		return 0, 0, "", false
	}
	hi, err := strconv.ParseUint(fields[0][dash+1:], 16, 64)
	if err != nil || hi <= lo {
		return 0, 0, "", false
	}
	return uintptr(lo), uintptr(hi), fields[1], true
}
