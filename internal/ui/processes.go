package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebstern/sysdash/internal/collect"
	"github.com/calebstern/sysdash/internal/model"
	"github.com/calebstern/sysdash/internal/proctree"
)

type inputMode int

const (
	modeBrowsing inputMode = iota
	modePopupNiceness
	modePopupFilter
)

type columnKind int

const (
	colNumeric columnKind = iota
	colString
)

// columnDef fixes a process table column: how it renders, how it sorts and
// how a filter value applies to it. Numeric columns sort numerically and
// filter by integer equality; string columns sort lexicographically and
// filter by substring containment.
type columnDef struct {
	title string
	width int
	kind  columnKind
	num   func(r model.ProcessRecord) float64
	str   func(r model.ProcessRecord) string
	cell  func(r model.ProcessRecord) string
}

var processColumns = []columnDef{
	{title: "PID", width: 7, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.PID) },
		cell: func(r model.ProcessRecord) string { return strconv.Itoa(r.PID) }},
	{title: "PPID", width: 7, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.ParentPID) },
		cell: func(r model.ProcessRecord) string { return strconv.Itoa(r.ParentPID) }},
	{title: "TID", width: 7, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.TID) },
		cell: func(r model.ProcessRecord) string { return strconv.Itoa(r.TID) }},
	{title: "User", width: 10, kind: colString,
		str:  func(r model.ProcessRecord) string { return r.User },
		cell: func(r model.ProcessRecord) string { return r.User }},
	{title: "Umask", width: 5, kind: colString,
		str:  func(r model.ProcessRecord) string { return r.Umask },
		cell: func(r model.ProcessRecord) string { return r.Umask }},
	{title: "Thr", width: 4, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.ThreadCount) },
		cell: func(r model.ProcessRecord) string { return strconv.Itoa(r.ThreadCount) }},
	{title: "Name", width: 16, kind: colString,
		str:  func(r model.ProcessRecord) string { return r.Name },
		cell: func(r model.ProcessRecord) string { return truncate(r.Name, 16) }},
	{title: "State", width: 5, kind: colString,
		str:  func(r model.ProcessRecord) string { return r.State },
		cell: func(r model.ProcessRecord) string { return r.State }},
	{title: "Nice", width: 4, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.Nice) },
		cell: func(r model.ProcessRecord) string { return strconv.Itoa(r.Nice) }},
	{title: "CPU%", width: 7, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return r.CPUPercent },
		cell: func(r model.ProcessRecord) string { return fmt.Sprintf("%.2f", r.CPUPercent) }},
	{title: "RES", width: 9, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.ResidentKB) },
		cell: func(r model.ProcessRecord) string { return HumanizeKB(r.ResidentKB) }},
	{title: "SWAP", width: 9, kind: colNumeric,
		num:  func(r model.ProcessRecord) float64 { return float64(r.SwappedKB) },
		cell: func(r model.ProcessRecord) string { return HumanizeKB(r.SwappedKB) }},
	{title: "Command", width: 30, kind: colString,
		str:  func(r model.ProcessRecord) string { return r.Command },
		cell: func(r model.ProcessRecord) string { return truncate(r.Command, 30) }},
}

// columnFilter is the single active display-time filter. It never mutates
// the snapshot; excluded rows reappear as soon as the filter is cleared.
type columnFilter struct {
	column int
	text   string
	number int64
}

func (f columnFilter) describe() string {
	def := processColumns[f.column]
	if def.kind == colNumeric {
		return fmt.Sprintf("%s=%d", def.title, f.number)
	}
	return fmt.Sprintf("%s~%q", def.title, f.text)
}

func (f columnFilter) match(r model.ProcessRecord) bool {
	def := processColumns[f.column]
	if def.kind == colNumeric {
		return int64(def.num(r)) == f.number
	}
	return strings.Contains(def.str(r), f.text)
}

// processesWidget is the stateful process table controller: selection,
// focused column, sort column/direction, at most one filter, and the modal
// niceness/filter input.
type processesWidget struct {
	mailbox *collect.Mailbox[model.ProcessSnapshot]
	records []model.ProcessRecord

	cursor   int
	column   int
	sortCol  int
	sortDesc bool
	filter   *columnFilter

	mode      inputMode
	filterCol int
	input     textinput.Model

	table table.Model

	kill   func(tid int) error
	renice func(tid, niceness int) error
}

const cpuColumn = 9

func newProcessesWidget(mailbox *collect.Mailbox[model.ProcessSnapshot]) *processesWidget {
	input := textinput.New()
	input.Prompt = "> "

	columns := make([]table.Column, len(processColumns))
	for i, def := range processColumns {
		columns[i] = table.Column{Title: def.title, Width: def.width}
	}
	t := table.New(table.WithColumns(columns), table.WithFocused(true), table.WithHeight(16))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
		BorderForeground(lipgloss.Color("60"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return &processesWidget{
		mailbox:  mailbox,
		column:   cpuColumn,
		sortCol:  cpuColumn,
		sortDesc: true,
		input:    input,
		table:    t,
		kill:     proctree.Kill,
		renice:   proctree.Renice,
	}
}

func (w *processesWidget) name() string { return "Processes" }

func (w *processesWidget) capturesKeys() bool { return w.mode != modeBrowsing }

func (w *processesWidget) update() {
	snapshot, ok := w.mailbox.TryTake()
	if !ok {
		return
	}
	// The snapshot is immutable; sort a private copy. Each cycle rebuilds
	// the list from scratch, so row order among equal sort keys may
	// shuffle between snapshots (the comparator has no secondary key).
	w.records = append([]model.ProcessRecord(nil), snapshot.Processes...)
	w.sortRecords()
	w.clampCursor()
}

func (w *processesWidget) sortRecords() {
	def := processColumns[w.sortCol]
	desc := w.sortDesc
	sort.Slice(w.records, func(i, j int) bool {
		var less bool
		if def.kind == colNumeric {
			less = def.num(w.records[i]) < def.num(w.records[j])
		} else {
			less = def.str(w.records[i]) < def.str(w.records[j])
		}
		if desc {
			return !less && !equalKey(def, w.records[i], w.records[j])
		}
		return less
	})
}

func equalKey(def columnDef, a, b model.ProcessRecord) bool {
	if def.kind == colNumeric {
		return def.num(a) == def.num(b)
	}
	return def.str(a) == def.str(b)
}

// visible applies the active filter over the sorted records.
func (w *processesWidget) visible() []model.ProcessRecord {
	if w.filter == nil {
		return w.records
	}
	filtered := make([]model.ProcessRecord, 0, len(w.records))
	for _, r := range w.records {
		if w.filter.match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (w *processesWidget) clampCursor() {
	if max := len(w.visible()) - 1; w.cursor > max {
		if max < 0 {
			max = 0
		}
		w.cursor = max
	}
}

func (w *processesWidget) handleKey(msg tea.KeyMsg) {
	if w.mode == modeBrowsing {
		w.handleBrowsingKey(msg)
		return
	}
	w.handlePopupKey(msg)
}

func (w *processesWidget) handleBrowsingKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "up":
		if w.cursor > 0 {
			w.cursor--
		}
	case "down":
		if w.cursor < len(w.visible())-1 {
			w.cursor++
		}
	case "left":
		if w.column > 0 {
			w.column--
		}
	case "right":
		if w.column < len(processColumns)-1 {
			w.column++
		}
	case "s":
		if w.sortCol == w.column {
			w.sortDesc = !w.sortDesc
		} else {
			w.sortCol = w.column
		}
		w.sortRecords()
	case "f":
		w.filterCol = w.column
		w.openPopup(modePopupFilter)
	case "r":
		w.filter = nil
		w.clampCursor()
	case "n":
		w.openPopup(modePopupNiceness)
	case "k":
		if rows := w.visible(); w.cursor < len(rows) {
			// Fire and forget: the next enumeration cycle shows
			// whether the process is gone.
			_ = w.kill(rows[w.cursor].TID)
		}
	}
}

func (w *processesWidget) openPopup(mode inputMode) {
	w.mode = mode
	w.input.SetValue("")
	if mode == modePopupNiceness {
		w.input.CharLimit = 3
	} else {
		w.input.CharLimit = 0
	}
	w.input.Focus()
}

func (w *processesWidget) handlePopupKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		w.submitPopup()
	case "esc", "c":
		w.closePopup()
	default:
		// Validation happens on submit only; any character may be
		// typed meanwhile.
		w.input, _ = w.input.Update(msg)
	}
}

func (w *processesWidget) submitPopup() {
	value := w.input.Value()
	switch w.mode {
	case modePopupNiceness:
		niceness, err := strconv.Atoi(value)
		if err != nil {
			niceness = 0
		}
		if rows := w.visible(); w.cursor < len(rows) &&
			niceness >= proctree.MinNiceness && niceness <= proctree.MaxNiceness {
			_ = w.renice(rows[w.cursor].TID, niceness)
		}
	case modePopupFilter:
		filter := columnFilter{column: w.filterCol}
		if processColumns[w.filterCol].kind == colNumeric {
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				n = 0
			}
			filter.number = n
		} else {
			filter.text = value
		}
		w.filter = &filter
		w.clampCursor()
	}
	w.closePopup()
}

func (w *processesWidget) closePopup() {
	w.input.SetValue("")
	w.mode = modeBrowsing
}

func (w *processesWidget) view(width int, focused bool) string {
	rows := w.visible()
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		cells := make(table.Row, len(processColumns))
		for c, def := range processColumns {
			cells[c] = def.cell(r)
		}
		tableRows[i] = cells
	}
	w.table.SetRows(tableRows)
	w.table.SetCursor(w.cursor)

	body := w.table.View() + "\n" + w.statusLine(len(rows))
	if w.mode != modeBrowsing {
		body += "\n" + w.popupView()
	}
	return card(w.name(), body, focused)
}

func (w *processesWidget) statusLine(shown int) string {
	direction := "↑"
	if w.sortDesc {
		direction = "↓"
	}
	status := fmt.Sprintf("%d threads  col:%s  sort:%s%s",
		shown, processColumns[w.column].title,
		processColumns[w.sortCol].title, direction)
	if w.filter != nil {
		status += "  filter:" + w.filter.describe()
	}
	status += "  s:sort f:filter r:reset n:nice k:kill"
	return subtleStyle.Render(status)
}

var popupStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("220")).
	Padding(0, 1)

func (w *processesWidget) popupView() string {
	title := "Niceness [-20..19]"
	if w.mode == modePopupFilter {
		title = "Filter " + processColumns[w.filterCol].title
	}
	return popupStyle.Render(title + "\n" + w.input.View() + "\n(c)ancel · Enter applies")
}
