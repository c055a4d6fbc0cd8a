package ui

import (
	"fmt"
	"strings"
)

var byteUnits = [...]string{"B", "KiB", "MiB", "GiB", "TiB"}

// Humanize renders a byte count with one decimal and a binary unit.
// Values under 1000 stay as plain bytes: 999 -> "999 B", 1500 -> "1.5 KiB".
func Humanize(bytes uint64) string {
	if bytes < 1000 {
		return fmt.Sprintf("%d %s", bytes, byteUnits[0])
	}
	size := float64(bytes)
	unit := 0
	for size > 1000 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}

// HumanizeKB renders a kB quantity as reported by /proc.
func HumanizeKB(kb uint64) string { return Humanize(kb * 1024) }

// Rate renders a byte-per-second rate.
func Rate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	return Humanize(uint64(bytesPerSec)) + "/s"
}

const (
	gaugeFill  = "█"
	gaugeEmpty = "░"
)

// gaugeBar renders a fixed-width utilization gauge, clamped to 0-100.
func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a percentage history as one line, newest on the right,
// truncated from the left to fit width.
func sparkline(values []float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100 * float64(len(sparkRunes)-1))
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	return string(r[:n-1]) + "…"
}
