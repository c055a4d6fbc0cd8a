package procfs

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calebstern/sysdash/internal/model"
)

// MemInfoPath is the memory/swap counter file.
const MemInfoPath = "/proc/meminfo"

// ParseMemInfo extracts the memory and swap rows from a /proc/meminfo
// stream. Values are kB. Rows the kernel omits stay zero.
func ParseMemInfo(r io.Reader) model.MemorySample {
	var sample model.MemorySample
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		name := line[:idx]

		var dst *uint64
		switch name {
		case "MemTotal":
			dst = &sample.MemTotal
		case "MemFree":
			dst = &sample.MemFree
		case "MemAvailable":
			dst = &sample.MemAvailable
		case "SwapTotal":
			dst = &sample.SwapTotal
		case "SwapFree":
			dst = &sample.SwapFree
		case "SwapCached":
			dst = &sample.SwapCached
		default:
			continue
		}

		fields := strings.Fields(line[idx+1:])
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		*dst = n
	}
	return sample
}

// ReadMemInfo opens path (normally MemInfoPath) and parses it.
func ReadMemInfo(path string) (model.MemorySample, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.MemorySample{}, err
	}
	defer f.Close()
	return ParseMemInfo(f), nil
}
