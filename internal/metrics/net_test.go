package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebstern/sysdash/internal/model"
)

func TestNetRate_FirstObservationEmitsNothing(t *testing.T) {
	rate := NewNetRate()
	_, _, ok := rate.Observe(model.NetworkCounterSample{Interface: "eth0", RxBytes: 1000}, time.Now())
	assert.False(t, ok)
}

func TestNetRate_UsesMeasuredElapsedTime(t *testing.T) {
	rate := NewNetRate()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rate.Observe(model.NetworkCounterSample{Interface: "eth0", RxBytes: 1000, TxBytes: 500}, t0)
	rx, tx, ok := rate.Observe(
		model.NetworkCounterSample{Interface: "eth0", RxBytes: 3000, TxBytes: 1500},
		t0.Add(2*time.Second))
	require.True(t, ok)
	assert.InDelta(t, 1000.0, rx, 1e-9)
	assert.InDelta(t, 500.0, tx, 1e-9)
}

func TestNetRate_ZeroElapsedYieldsZero(t *testing.T) {
	rate := NewNetRate()
	t0 := time.Now()
	rate.Observe(model.NetworkCounterSample{Interface: "eth0", RxBytes: 1000}, t0)

	rx, tx, ok := rate.Observe(model.NetworkCounterSample{Interface: "eth0", RxBytes: 9000}, t0)
	require.True(t, ok)
	assert.Zero(t, rx)
	assert.Zero(t, tx)
}

func TestNetRate_BackwardsCounterYieldsZero(t *testing.T) {
	rate := NewNetRate()
	t0 := time.Now()
	rate.Observe(model.NetworkCounterSample{Interface: "eth0", RxBytes: 5000, TxBytes: 5000}, t0)

	rx, tx, ok := rate.Observe(
		model.NetworkCounterSample{Interface: "eth0", RxBytes: 100, TxBytes: 6000},
		t0.Add(time.Second))
	require.True(t, ok)
	assert.Zero(t, rx)
	assert.InDelta(t, 1000.0, tx, 1e-9)
}

func TestNetRate_InterfaceSwitchStartsFreshDelta(t *testing.T) {
	rate := NewNetRate()
	t0 := time.Now()
	rate.Observe(model.NetworkCounterSample{Interface: "eth0", RxBytes: 1000}, t0)

	// The busiest-interface policy switched; wlan0 has no history yet.
	_, _, ok := rate.Observe(model.NetworkCounterSample{Interface: "wlan0", RxBytes: 9000}, t0.Add(time.Second))
	assert.False(t, ok)
}
