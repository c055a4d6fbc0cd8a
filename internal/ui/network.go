package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/calebstern/sysdash/internal/collect"
	"github.com/calebstern/sysdash/internal/model"
)

// networkWidget shows the busiest interface's live rates and raw counters.
// The monitored interface can change mid-run when another one overtakes it
// in cumulative receive bytes.
type networkWidget struct {
	mailbox *collect.Mailbox[model.NetworkSnapshot]
	latest  model.NetworkSnapshot
}

func newNetworkWidget(mailbox *collect.Mailbox[model.NetworkSnapshot]) *networkWidget {
	return &networkWidget{mailbox: mailbox}
}

func (w *networkWidget) name() string { return "Network" }

func (w *networkWidget) update() {
	if snapshot, ok := w.mailbox.TryTake(); ok {
		w.latest = snapshot
	}
}

func (w *networkWidget) view(width int, focused bool) string {
	c := w.latest.Counters
	var b strings.Builder
	fmt.Fprintf(&b, "iface %s\n", c.Interface)
	fmt.Fprintf(&b, "RX %12s  total %s\n", Rate(w.latest.RxBytesPerSec), Humanize(c.RxBytes))
	fmt.Fprintf(&b, "TX %12s  total %s\n", Rate(w.latest.TxBytesPerSec), Humanize(c.TxBytes))
	fmt.Fprintf(&b, "pkts %d/%d  errs %d/%d  drop %d/%d",
		c.RxPackets, c.TxPackets, c.RxErrs, c.TxErrs, c.RxDrop, c.TxDrop)
	return card(w.name(), b.String(), focused)
}

func (w *networkWidget) handleKey(tea.KeyMsg) {}
