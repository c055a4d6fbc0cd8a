package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanize(t *testing.T) {
	assert.Equal(t, "0 B", Humanize(0))
	assert.Equal(t, "999 B", Humanize(999))
	assert.Equal(t, "1.5 KiB", Humanize(1500))
	assert.Equal(t, "2.0 MiB", Humanize(2*1024*1024))
	assert.Equal(t, "1.0 GiB", Humanize(1<<30))
	// Past the largest unit the divisor loop stops at TiB.
	assert.Equal(t, "2048.0 TiB", Humanize(1<<51))
}

func TestHumanizeKB(t *testing.T) {
	assert.Equal(t, "1.0 MiB", HumanizeKB(1024))
	assert.Equal(t, "0 B", HumanizeKB(0))
	assert.Equal(t, "2.0 KiB", HumanizeKB(2))
}

func TestRate(t *testing.T) {
	assert.Equal(t, "1.5 KiB/s", Rate(1500))
	assert.Equal(t, "0 B/s", Rate(-10))
}

func TestGaugeBarClamps(t *testing.T) {
	assert.Contains(t, gaugeBar(150, 10), "100.0%")
	assert.Contains(t, gaugeBar(-5, 10), "0.0%")
}

func TestSparklineTruncatesFromLeft(t *testing.T) {
	line := sparkline([]float64{0, 0, 0, 100, 100}, 2)
	assert.Equal(t, "██", line)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "long…", truncate("longest", 5))
}

func TestUsedKB(t *testing.T) {
	// MemAvailable wins over MemFree when present.
	assert.Equal(t, uint64(600), usedKB(1000, 100, 400))
	assert.Equal(t, uint64(900), usedKB(1000, 100, 0))
	assert.Zero(t, usedKB(0, 0, 0))
	// Availability above total is nonsense input; report nothing used.
	assert.Zero(t, usedKB(1000, 100, 2000))
}

func TestPercentOf(t *testing.T) {
	assert.InDelta(t, 25.0, percentOf(250, 1000), 1e-9)
	assert.Zero(t, percentOf(5, 0))
}
