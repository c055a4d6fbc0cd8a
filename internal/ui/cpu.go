package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebstern/sysdash/internal/collect"
	"github.com/calebstern/sysdash/internal/model"
)

// historyLimit bounds the rolling utilization history per CPU name.
const historyLimit = 300

// cpuWidget shows the aggregate utilization history plus optional per-core
// gauges. Space toggles the per-core view.
type cpuWidget struct {
	mailbox   *collect.Mailbox[model.CPUSnapshot]
	latest    model.CPUSnapshot
	history   map[string][]float64
	order     []string
	showCores bool
}

func newCPUWidget(mailbox *collect.Mailbox[model.CPUSnapshot]) *cpuWidget {
	return &cpuWidget{
		mailbox:   mailbox,
		history:   make(map[string][]float64),
		showCores: true,
	}
}

func (w *cpuWidget) name() string { return "CPU" }

func (w *cpuWidget) update() {
	snapshot, ok := w.mailbox.TryTake()
	if !ok {
		return
	}
	w.latest = snapshot
	for _, util := range snapshot.Utilizations {
		if _, known := w.history[util.Name]; !known {
			w.order = append(w.order, util.Name)
		}
		values := append(w.history[util.Name], util.Percent)
		if len(values) > historyLimit {
			values = values[1:]
		}
		w.history[util.Name] = values
	}
}

func (w *cpuWidget) view(width int, focused bool) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	gaugeWidth := inner - 10

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", sparkline(w.history["cpu"], inner))
	fmt.Fprintf(&b, "%-5s %s\n", "cpu", gaugeBar(w.current("cpu"), gaugeWidth))
	if w.showCores {
		for _, name := range w.order {
			if name == "cpu" {
				continue
			}
			fmt.Fprintf(&b, "%-5s %s\n", name, gaugeBar(w.current(name), gaugeWidth))
		}
	}
	fmt.Fprintf(&b, "load %.2f %.2f %.2f   %s",
		w.latest.Load1, w.latest.Load5, w.latest.Load15,
		subtleStyle.Render("space: toggle cores"))
	return card(w.name(), b.String(), focused)
}

func (w *cpuWidget) current(name string) float64 {
	values := w.history[name]
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}

func (w *cpuWidget) handleKey(msg tea.KeyMsg) {
	if msg.String() == " " {
		w.showCores = !w.showCores
	}
}
