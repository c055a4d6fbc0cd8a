// Package metrics turns consecutive raw counter samples into derived
// point-in-time metrics. Each engine keeps the previous sample per identity
// and is owned exclusively by a single collector goroutine, so none of them
// lock.
package metrics

import (
	"github.com/calebstern/sysdash/internal/model"
)

// CPUDelta derives utilization percentages from consecutive /proc/stat
// samples, keyed by CPU name.
type CPUDelta struct {
	prev map[string]model.CPUCounterSample
}

func NewCPUDelta() *CPUDelta {
	return &CPUDelta{prev: make(map[string]model.CPUCounterSample)}
}

// Observe stores the sample and, when a previous sample of the same name
// exists, returns the pair-wise utilization. The first observation of a
// name returns false. A zero or backwards total delta yields 0.0, never
// NaN or Inf (kernel counter resets are tolerated, not amplified).
func (d *CPUDelta) Observe(sample model.CPUCounterSample) (model.CPUUtilization, bool) {
	prev, ok := d.prev[sample.Name]
	d.prev[sample.Name] = sample
	if !ok {
		return model.CPUUtilization{}, false
	}

	util := model.CPUUtilization{Name: sample.Name}

	curTotal, prevTotal := sample.Total(), prev.Total()
	if curTotal > prevTotal && sample.Idle >= prev.Idle {
		dTotal := float64(curTotal - prevTotal)
		dIdle := float64(sample.Idle - prev.Idle)
		util.Percent = 100 * (1 - dIdle/dTotal)
	}
	return util, true
}
