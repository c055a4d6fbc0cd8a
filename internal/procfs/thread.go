package procfs

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ThreadStat holds the positional fields read from
// /proc/[pid]/task/[tid]/stat.
type ThreadStat struct {
	State       string
	ParentPID   int
	Nice        int
	ThreadCount int
	UTime       uint64
	STime       uint64
}

// CPUTicks is the cumulative user+system time of the thread.
func (s ThreadStat) CPUTicks() uint64 { return s.UTime + s.STime }

// ParseThreadStat parses one stat line. The command name may itself contain
// spaces and parentheses, so the line is split on the last ") " occurrence
// before the positional contract applies: state is token 0, ppid token 1,
// utime 11, stime 12, nice 16, thread count 17.
func ParseThreadStat(line string) (ThreadStat, bool) {
	idx := strings.LastIndex(line, ") ")
	if idx < 0 {
		return ThreadStat{}, false
	}

	tokens := strings.Fields(line[idx+2:])
	if len(tokens) == 0 {
		return ThreadStat{}, false
	}

	number := func(i int) uint64 {
		if i >= len(tokens) {
			return 0
		}
		n, err := strconv.ParseUint(tokens[i], 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	signed := func(i int) int {
		if i >= len(tokens) {
			return 0
		}
		n, err := strconv.Atoi(tokens[i])
		if err != nil {
			return 0
		}
		return n
	}

	return ThreadStat{
		State:       tokens[0],
		ParentPID:   signed(1),
		UTime:       number(11),
		STime:       number(12),
		Nice:        signed(16),
		ThreadCount: signed(17),
	}, true
}

// ThreadStatus holds the name/value fields read from
// /proc/[pid]/task/[tid]/status.
type ThreadStatus struct {
	Name       string
	Umask      string
	ResidentKB uint64
	SwappedKB  uint64
}

// ParseThreadStatus scans a status stream for the Name, Umask, VmRSS and
// VmSwap rows. Missing rows stay zero/empty (kernel threads have no VmRSS).
func ParseThreadStatus(r io.Reader) ThreadStatus {
	var status ThreadStatus
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		switch line[:idx] {
		case "Name":
			status.Name = value
		case "Umask":
			status.Umask = value
		case "VmRSS":
			status.ResidentKB = kbValue(value)
		case "VmSwap":
			status.SwappedKB = kbValue(value)
		}
	}
	return status
}

func kbValue(v string) uint64 {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FirstCmdline returns the command line up to the first NUL, with the
// remaining NUL separators turned into spaces. cmdline is empty for kernel
// threads; the caller falls back to the status name.
func FirstCmdline(raw []byte) string {
	s := strings.TrimRight(string(raw), "\x00")
	return strings.ReplaceAll(s, "\x00", " ")
}
