package metrics

import (
	"time"

	"github.com/calebstern/sysdash/internal/model"
)

type netObservation struct {
	sample model.NetworkCounterSample
	at     time.Time
}

// NetRate derives receive/transmit byte rates per interface. Rates divide
// the counter delta by the true measured elapsed time between observations
// of the same interface, not by the nominal collection interval.
type NetRate struct {
	prev map[string]netObservation
}

func NewNetRate() *NetRate {
	return &NetRate{prev: make(map[string]netObservation)}
}

// Observe returns the rates since the last observation of this interface.
// First observation returns false. Zero or negative elapsed time, and
// counters that moved backwards, produce 0.0 rates.
func (n *NetRate) Observe(sample model.NetworkCounterSample, now time.Time) (rx, tx float64, ok bool) {
	prev, seen := n.prev[sample.Interface]
	n.prev[sample.Interface] = netObservation{sample: sample, at: now}
	if !seen {
		return 0, 0, false
	}

	elapsed := now.Sub(prev.at).Seconds()
	if elapsed <= 0 {
		return 0, 0, true
	}
	if sample.RxBytes >= prev.sample.RxBytes {
		rx = float64(sample.RxBytes-prev.sample.RxBytes) / elapsed
	}
	if sample.TxBytes >= prev.sample.TxBytes {
		tx = float64(sample.TxBytes-prev.sample.TxBytes) / elapsed
	}
	return rx, tx, true
}
