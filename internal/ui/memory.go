package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebstern/sysdash/internal/collect"
	"github.com/calebstern/sysdash/internal/model"
)

// memoryWidget shows RAM and swap gauges from the latest meminfo snapshot.
type memoryWidget struct {
	mailbox *collect.Mailbox[model.MemorySnapshot]
	latest  model.MemorySnapshot
}

func newMemoryWidget(mailbox *collect.Mailbox[model.MemorySnapshot]) *memoryWidget {
	return &memoryWidget{mailbox: mailbox}
}

func (w *memoryWidget) name() string { return "Memory" }

func (w *memoryWidget) update() {
	if snapshot, ok := w.mailbox.TryTake(); ok {
		w.latest = snapshot
	}
}

func (w *memoryWidget) view(width int, focused bool) string {
	mem := w.latest.Memory
	gaugeWidth := width - 16
	if gaugeWidth < 10 {
		gaugeWidth = 10
	}

	memUsed := usedKB(mem.MemTotal, mem.MemFree, mem.MemAvailable)
	swapUsed := usedKB(mem.SwapTotal, mem.SwapFree, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %s\n", "RAM", gaugeBar(percentOf(memUsed, mem.MemTotal), gaugeWidth))
	fmt.Fprintf(&b, "      %s / %s\n", HumanizeKB(memUsed), HumanizeKB(mem.MemTotal))
	fmt.Fprintf(&b, "%-5s %s\n", "Swap", gaugeBar(percentOf(swapUsed, mem.SwapTotal), gaugeWidth))
	fmt.Fprintf(&b, "      %s / %s, %s cached",
		HumanizeKB(swapUsed), HumanizeKB(mem.SwapTotal), HumanizeKB(mem.SwapCached))
	return card(w.name(), b.String(), focused)
}

func (w *memoryWidget) handleKey(tea.KeyMsg) {}

// usedKB prefers the kernel's availability estimate over plain free when
// present. Zero totals mean "unknown" and yield zero used.
func usedKB(total, free, available uint64) uint64 {
	if total == 0 {
		return 0
	}
	reclaimable := free
	if available > 0 {
		reclaimable = available
	}
	if reclaimable > total {
		return 0
	}
	return total - reclaimable
}

func percentOf(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
