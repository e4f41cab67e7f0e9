package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NitishVankina/ServerPet/internal/engine"
	"github.com/NitishVankina/ServerPet/internal/pet"
	"github.com/NitishVankina/ServerPet/internal/sysinfo"
)

type view int

const (
	viewDashboard view = iota
	viewDetails
	viewStats
)

const (
	thresholdStep    = 5.0
	alertFlashTicks  = 12
	detailsRefresh   = 5 * time.Second
	uiRefresh        = time.Second / 4
	snapshotChanSize = 16
)

// Model renders live engine snapshots. It owns no engine state: snapshots
// arrive over a bounded channel and everything else is read through the
// engine's copying accessors.
type Model struct {
	eng      *engine.Engine
	creature pet.Pet
	diskPath string

	snapshots <-chan engine.Snapshot
	latest    engine.Snapshot
	hasSnap   bool
	message   string

	details    sysinfo.Info
	hasDetails bool

	active     view
	width      int
	height     int
	alertTicks int
}

func New(eng *engine.Engine, creature pet.Pet, diskPath string) *Model {
	ch := make(chan engine.Snapshot, snapshotChanSize)
	eng.OnSnapshot(func(s engine.Snapshot) {
		select {
		case ch <- s:
		default:
		}
	})

	return &Model{
		eng:       eng,
		creature:  creature,
		diskPath:  diskPath,
		snapshots: ch,
		message:   pet.Message(engine.MoodContent),
		width:     100,
		height:    35,
	}
}

// Messages
type (
	tickMsg    struct{}
	detailsMsg sysinfo.Info
)

func tickCmd() tea.Cmd {
	return tea.Tick(uiRefresh, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) detailsCmd() tea.Cmd {
	diskPath := m.diskPath
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return detailsMsg(sysinfo.Collect(ctx, diskPath))
	}
}

func scheduleDetailsCmd() tea.Cmd {
	return tea.Tick(detailsRefresh, func(time.Time) tea.Msg { return refreshDetailsMsg{} })
}

type refreshDetailsMsg struct{}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.detailsCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.drainSnapshots()
		return m, tickCmd()

	case detailsMsg:
		m.details = sysinfo.Info(msg)
		m.hasDetails = true
		return m, scheduleDetailsCmd()

	case refreshDetailsMsg:
		return m, m.detailsCmd()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % 3
	case "1":
		m.active = viewDashboard
	case "2":
		m.active = viewDetails
	case "3":
		m.active = viewStats
	case "a":
		_ = m.eng.Configure(m.eng.Threshold(), !m.eng.AlertsEnabled())
	case "+", "=":
		m.adjustThreshold(thresholdStep)
	case "-":
		m.adjustThreshold(-thresholdStep)
	}

	return m, nil
}

func (m *Model) adjustThreshold(delta float64) {
	next := m.eng.Threshold() + delta
	if next < 50 {
		next = 50
	}
	if next > 100 {
		next = 100
	}
	_ = m.eng.Configure(next, m.eng.AlertsEnabled())
}

// drainSnapshots consumes everything queued since the last UI tick, keeping
// the newest reading and reacting to mood changes and alerts.
func (m *Model) drainSnapshots() {
	for {
		select {
		case s := <-m.snapshots:
			if s.MoodChanged {
				m.message = pet.Message(s.Mood)
			}
			if s.AlertFired {
				m.alertTicks = alertFlashTicks
			}
			m.latest = s
			m.hasSnap = true
		default:
			if m.alertTicks > 0 {
				m.alertTicks--
			}
			return
		}
	}
}
