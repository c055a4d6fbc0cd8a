package metrics

import (
	"time"

	"github.com/tklauser/go-sysconf"
)

// clockTicks is USER_HZ, read once from the OS. 100 is only the fallback
// when sysconf is unavailable; it is not universal across kernels.
var clockTicks = 100.0

func init() {
	if tck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK); err == nil && tck > 0 {
		clockTicks = float64(tck)
	}
}

// ClockTicks reports the USER_HZ value used for per-thread CPU accounting.
func ClockTicks() float64 { return clockTicks }

type threadObservation struct {
	ticks uint64
	at    time.Time
}

// ThreadCPU derives per-thread CPU share from cumulative utime+stime ticks,
// keyed by tid. Elapsed time is measured per tid, not per enumeration cycle,
// because a tid may be skipped in some cycles.
type ThreadCPU struct {
	hz   float64
	prev map[int]threadObservation
}

func NewThreadCPU() *ThreadCPU {
	return &ThreadCPU{hz: clockTicks, prev: make(map[int]threadObservation)}
}

// Observe returns 100*(Δticks/HZ)/Δseconds for the tid, or 0.0 on the first
// observation, a non-positive elapsed time, or a backwards tick counter
// (tid reuse after exit).
func (t *ThreadCPU) Observe(tid int, ticks uint64, now time.Time) float64 {
	prev, seen := t.prev[tid]
	t.prev[tid] = threadObservation{ticks: ticks, at: now}
	if !seen {
		return 0
	}

	elapsed := now.Sub(prev.at).Seconds()
	if elapsed <= 0 || ticks < prev.ticks {
		return 0
	}
	return 100 * (float64(ticks-prev.ticks) / t.hz) / elapsed
}

// Prune drops history for tids not seen in the current cycle so the map
// cannot grow without bound as threads come and go.
func (t *ThreadCPU) Prune(seen map[int]struct{}) {
	for tid := range t.prev {
		if _, ok := seen[tid]; !ok {
			delete(t.prev, tid)
		}
	}
}

// Size reports the number of tracked tids.
func (t *ThreadCPU) Size() int { return len(t.prev) }
