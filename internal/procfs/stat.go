// Package procfs parses the raw kernel counter files the dashboard samples.
// Parsers are pure: they take a reader or a single line and return a typed
// sample. Malformed numeric fields default to zero and never abort a record.
package procfs

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calebstern/sysdash/internal/model"
)

// StatPath is the system-wide CPU tick counter file.
const StatPath = "/proc/stat"

// ParseCPULine parses one cpu row of /proc/stat. The first token is the
// name, the next seven are user, nice, system, idle, iowait, irq, softirq
// in that fixed order. Returns false for lines without a cpu prefix.
func ParseCPULine(line string) (model.CPUCounterSample, bool) {
	if !strings.HasPrefix(line, "cpu") {
		return model.CPUCounterSample{}, false
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return model.CPUCounterSample{}, false
	}

	var values [7]uint64
	for i := 0; i < 7 && i+1 < len(fields); i++ {
		// Garbage fields stay zero; the row is still usable.
		n, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			continue
		}
		values[i] = n
	}

	return model.CPUCounterSample{
		Name:    fields[0],
		User:    values[0],
		Nice:    values[1],
		System:  values[2],
		Idle:    values[3],
		IOWait:  values[4],
		IRQ:     values[5],
		SoftIRQ: values[6],
	}, true
}

// ParseCPUCounters reads every cpu row from a /proc/stat stream, aggregate
// first, cores in kernel order after it.
func ParseCPUCounters(r io.Reader) []model.CPUCounterSample {
	var samples []model.CPUCounterSample
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		sample, ok := ParseCPULine(sc.Text())
		if !ok {
			continue
		}
		samples = append(samples, sample)
	}
	return samples
}

// ReadCPUCounters opens path (normally StatPath) and parses its cpu rows.
func ReadCPUCounters(path string) ([]model.CPUCounterSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCPUCounters(f), nil
}
