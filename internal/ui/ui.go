// Package ui renders the dashboard. The root model owns the five collector
// goroutines; once per frame it does a non-blocking drain of each mailbox
// and falls back to the last known snapshot on a miss.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calebstern/sysdash/internal/collect"
	"github.com/calebstern/sysdash/internal/config"
	"github.com/calebstern/sysdash/internal/sampler"
)

// Model is the bubbletea root: widget composition, focus routing and the
// frame tick.
type Model struct {
	cfg     config.Config
	cancel  context.CancelFunc
	widgets []widget
	focus   int
	width   int
	height  int
	lastKey time.Time
}

func New(cfg config.Config) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	cpuCollector := collect.New("cpu", cfg.CPUInterval, sampler.NewCPU(cfg).Sample)
	memCollector := collect.New("memory", cfg.MemoryInterval, sampler.NewMemory(cfg).Sample)
	diskCollector := collect.New("disk", cfg.DiskInterval, sampler.NewDisk().Sample)
	netCollector := collect.New("network", cfg.NetworkInterval, sampler.NewNetwork(cfg).Sample)
	procCollector := collect.New("processes", cfg.ProcessInterval, sampler.NewProcesses(cfg).Sample)

	cpuCollector.Start(ctx)
	memCollector.Start(ctx)
	diskCollector.Start(ctx)
	netCollector.Start(ctx)
	procCollector.Start(ctx)

	widgets := []widget{
		newCPUWidget(cpuCollector.Mailbox()),
		newMemoryWidget(memCollector.Mailbox()),
		newDiskWidget(diskCollector.Mailbox()),
		newNetworkWidget(netCollector.Mailbox()),
		newProcessesWidget(procCollector.Mailbox()),
	}

	return &Model{
		cfg:     cfg,
		cancel:  cancel,
		widgets: widgets,
		focus:   len(widgets) - 1, // process table starts focused
		width:   120,
		height:  40,
	}
}

type tickMsg struct{}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Init() tea.Cmd { return m.tickCmd() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		for _, w := range m.widgets {
			w.update()
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	focused := m.widgets[m.focus]
	captured := false
	if c, ok := focused.(keyCapturer); ok {
		captured = c.capturesKeys()
	}

	if !captured {
		switch msg.String() {
		case "q":
			m.cancel()
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % len(m.widgets)
			return m, nil
		case "shift+tab":
			m.focus = (m.focus - 1 + len(m.widgets)) % len(m.widgets)
			return m, nil
		}
	}

	// Key events are delivered at most once per window; extras are
	// dropped, not queued, so a held key cannot swamp the render loop.
	now := time.Now()
	if now.Sub(m.lastKey) < m.cfg.KeyWindow {
		return m, nil
	}
	m.lastKey = now

	focused.handleKey(msg)
	return m, nil
}

func (m *Model) View() string {
	header := titleStyle.Render("sysdash") + "  " +
		subtleStyle.Render(time.Now().Format("Mon Jan 2 15:04:05 2006")) + "  " +
		subtleStyle.Render("tab: focus · q: quit")

	third := m.width/3 - 2
	row1 := m.widgets[0].view(m.width-2, m.focus == 0)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		m.widgets[1].view(third, m.focus == 1),
		m.widgets[2].view(third, m.focus == 2),
		m.widgets[3].view(third, m.focus == 3),
	)
	row3 := m.widgets[4].view(m.width-2, m.focus == 4)

	return lipgloss.JoinVertical(lipgloss.Left, header, row1, row2, row3)
}

// Run starts the dashboard and blocks until the operator quits. Failing to
// acquire the terminal is the only startup error surfaced to the caller.
func Run(cfg config.Config) error {
	program := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
