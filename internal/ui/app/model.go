package app

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	prefsdto "wearlog/internal/modules/prefs/dto"
	trackingdto "wearlog/internal/modules/tracking/dto"
	weardto "wearlog/internal/modules/wear/dto"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/locale"
	"wearlog/internal/ui/components"
	"wearlog/internal/ui/theme"
	historyview "wearlog/internal/ui/views/history"
	todayview "wearlog/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type wearPort interface {
	Start(ctx context.Context) (weardto.SessionOutput, error)
	StartAt(ctx context.Context, at string) (weardto.SessionOutput, error)
	Stop(ctx context.Context) (weardto.SessionOutput, error)
	StopAt(ctx context.Context, at string) (weardto.SessionOutput, error)
	Ticks() <-chan time.Time
}

type prefsPort interface {
	SetGoal(ctx context.Context, hours float64) (prefsdto.PreferencesOutput, error)
	SetDayStart(ctx context.Context, at string) (prefsdto.PreferencesOutput, error)
}

type trackingPort interface {
	Report(ctx context.Context, days int) (trackingdto.ReportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Today", "History"}

// ─── async messages ──────────────────────────────────────────────────────────

type reportLoadedMsg struct {
	report trackingdto.ReportOutput
	err    error
}

type tickMsg time.Time

type actionDoneMsg struct {
	status string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, owns the palette and
// re-derives the report after every action and every live tick.
type Model struct {
	wear     wearPort
	prefs    prefsPort
	tracking trackingPort

	todayView   todayview.Model
	historyView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	wearing   bool
	status    string
	width     int
	height    int
}

func NewModel(wear wearPort, prefs prefsPort, tracking trackingPort, loc locale.Locale) Model {
	return Model{
		wear:        wear,
		prefs:       prefs,
		tracking:    tracking,
		todayView:   todayview.New(loc),
		historyView: historyview.New(loc),
		activeTab:   tabToday,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadReportCmd(), m.waitTickCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// ticks keep flowing while the palette is open
	if _, ok := msg.(tickMsg); ok {
		return m, tea.Batch(m.loadReportCmd(), m.waitTickCmd())
	}
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case reportLoadedMsg:
		m.todayView.SetReport(msg.report, msg.err)
		if msg.err != nil {
			m.status = "report: " + msg.err.Error()
			return m, nil
		}
		m.wearing = msg.report.IsWearing
		return m, m.historyView.SetReport(msg.report)

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.loadReportCmd()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabHistory && m.historyView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "s":
			if m.wearing {
				return m, m.stopCmd("")
			}
			return m, m.startCmd("")
		case "r":
			return m, m.loadReportCmd()
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabHistory:
		content = m.historyView.View()
	default:
		content = m.todayView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "wearlog  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.wearing {
		left = theme.Hot.Render("●") + "  " + left
	}
	right := theme.Muted.Render("?:help  s:start/stop  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch parts[0] {
	case "start":
		return m, m.startCmd("")
	case "stop":
		return m, m.stopCmd("")
	case "start-at", "stop-at", "day-start":
		if arg == "" {
			m.status = "usage: " + parts[0] + " HH:MM"
			return m, nil
		}
		switch parts[0] {
		case "start-at":
			return m, m.startCmd(arg)
		case "stop-at":
			return m, m.stopCmd(arg)
		}
		return m, m.setDayStartCmd(arg)
	case "goal":
		hours, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			m.status = "usage: goal <hours>"
			return m, nil
		}
		return m, m.setGoalCmd(hours)
	case "refresh":
		return m, m.loadReportCmd()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loadReportCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.tracking.Report(context.Background(), 0)
		return reportLoadedMsg{report: report, err: err}
	}
}

// waitTickCmd blocks on the live ticker; the ticker only fires while a
// session is open.
func (m Model) waitTickCmd() tea.Cmd {
	ch := m.wear.Ticks()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		return tickMsg(<-ch)
	}
}

func (m Model) startCmd(at string) tea.Cmd {
	return func() tea.Msg {
		var (
			out weardto.SessionOutput
			err error
		)
		if at == "" {
			out, err = m.wear.Start(context.Background())
		} else {
			out, err = m.wear.StartAt(context.Background(), at)
		}
		if errors.Is(err, apperrors.ErrActiveSessionExists) {
			return actionDoneMsg{err: errors.New("already wearing")}
		}
		return actionDoneMsg{status: "started at " + out.StartedAt.Format("15:04"), err: err}
	}
}

func (m Model) stopCmd(at string) tea.Cmd {
	return func() tea.Msg {
		var (
			out weardto.SessionOutput
			err error
		)
		if at == "" {
			out, err = m.wear.Stop(context.Background())
		} else {
			out, err = m.wear.StopAt(context.Background(), at)
		}
		if err != nil {
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				return actionDoneMsg{err: errors.New("not wearing")}
			}
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "stopped after " + out.Duration(*out.EndedAt).Truncate(time.Minute).String()}
	}
}

func (m Model) setGoalCmd(hours float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.prefs.SetGoal(context.Background(), hours)
		return actionDoneMsg{status: "goal " + strconv.FormatFloat(out.GoalHours, 'f', -1, 64) + "h", err: err}
	}
}

func (m Model) setDayStartCmd(at string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.prefs.SetDayStart(context.Background(), at)
		return actionDoneMsg{status: "day starts at " + out.DayStartAt, err: err}
	}
}
