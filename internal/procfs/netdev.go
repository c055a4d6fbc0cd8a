package procfs

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calebstern/sysdash/internal/model"
)

// NetDevPath is the per-interface network counter file.
const NetDevPath = "/proc/net/dev"

// ParseNetDev parses a /proc/net/dev stream into one counter sample per
// interface. The two header lines and the loopback interface are skipped.
//
// Row layout after "iface:" is 16 numeric columns; we keep receive
// bytes/packets/errs/drop (0-3) and transmit bytes/packets/errs/drop (8-11).
func ParseNetDev(r io.Reader) []model.NetworkCounterSample {
	var samples []model.NetworkCounterSample
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			// Header lines carry no colon-terminated interface name.
			continue
		}
		name := strings.TrimSpace(line[:idx])
		if name == "" || name == "lo" {
			continue
		}

		cols := strings.Fields(line[idx+1:])
		value := func(i int) uint64 {
			if i >= len(cols) {
				return 0
			}
			n, err := strconv.ParseUint(cols[i], 10, 64)
			if err != nil {
				return 0
			}
			return n
		}

		samples = append(samples, model.NetworkCounterSample{
			Interface: name,
			RxBytes:   value(0),
			RxPackets: value(1),
			RxErrs:    value(2),
			RxDrop:    value(3),
			TxBytes:   value(8),
			TxPackets: value(9),
			TxErrs:    value(10),
			TxDrop:    value(11),
		})
	}
	return samples
}

// BusiestInterface picks the interface with the highest cumulative RxBytes.
// The selection is re-evaluated every tick, so the monitored interface can
// change mid-run when another one overtakes it. Returns false when the list
// is empty.
func BusiestInterface(samples []model.NetworkCounterSample) (model.NetworkCounterSample, bool) {
	var best model.NetworkCounterSample
	found := false
	for _, s := range samples {
		if !found || s.RxBytes > best.RxBytes {
			best = s
			found = true
		}
	}
	return best, found
}

// ReadNetDev opens path (normally NetDevPath) and parses it.
func ReadNetDev(path string) ([]model.NetworkCounterSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseNetDev(f), nil
}
