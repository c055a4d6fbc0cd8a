package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebstern/sysdash/internal/collect"
	"github.com/calebstern/sysdash/internal/model"
)

// diskWidget lists device-backed mounts with usage, one row per mount.
type diskWidget struct {
	mailbox *collect.Mailbox[model.DiskSnapshot]
	latest  model.DiskSnapshot
}

func newDiskWidget(mailbox *collect.Mailbox[model.DiskSnapshot]) *diskWidget {
	return &diskWidget{mailbox: mailbox}
}

func (w *diskWidget) name() string { return "Disk" }

func (w *diskWidget) update() {
	if snapshot, ok := w.mailbox.TryTake(); ok {
		w.latest = snapshot
	}
}

func (w *diskWidget) view(width int, focused bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %9s %9s %9s %5s %s\n",
		"Filesystem", "Size", "Used", "Avail", "Use%", "Mounted on")
	for _, mount := range w.latest.Mounts {
		fmt.Fprintf(&b, "%-16s %9s %9s %9s %5s %s\n",
			truncate(mount.Filesystem, 16),
			HumanizeKB(mount.Total),
			HumanizeKB(mount.Used),
			HumanizeKB(mount.Available),
			mount.UsedPercentage,
			truncate(mount.Mountpoint, 24))
	}
	return card(w.name(), strings.TrimRight(b.String(), "\n"), focused)
}

func (w *diskWidget) handleKey(tea.KeyMsg) {}
