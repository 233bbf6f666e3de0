package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackingdto "wearlog/internal/modules/tracking/dto"
	"wearlog/internal/platform/locale"
	"wearlog/internal/ui/theme"
)

var bigStyle = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Padding(0, 1)

type Model struct {
	locale   locale.Locale
	report   trackingdto.ReportOutput
	loaded   bool
	err      error
	progress progress.Model
	width    int
	height   int
}

func New(loc locale.Locale) Model {
	bar := progress.New(progress.WithGradient(string(theme.Peach), string(theme.Green)), progress.WithoutPercentage())
	return Model{locale: loc, progress: bar}
}

// SetReport replaces the displayed report; err keeps the previous one on
// screen with an error line.
func (m *Model) SetReport(report trackingdto.ReportOutput, err error) {
	m.err = err
	if err != nil {
		return
	}
	m.report = report
	m.loaded = true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.progress.Width = max(10, min(size.Width-8, 72))
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return theme.Warn.Render("report: " + m.err.Error())
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("loading…"))
	}
	r := m.report

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "  " + theme.Muted.Render(r.Today) + "\n\n")
	sb.WriteString(bigStyle.Render(r.TotalTime) + theme.Muted.Render(fmt.Sprintf(" / %gh", r.GoalHours)) + "\n\n")
	sb.WriteString(m.progress.ViewAs(min(r.Progress, 100)/100) + "  " + m.locale.Percent(r.Progress) + "\n\n")

	if r.GoalReached {
		sb.WriteString(theme.Good.Render(r.EstEndTime) + "\n")
	} else {
		sb.WriteString(r.EstEndTime + "\n")
	}
	if r.IsWearing && r.OpenSince != nil {
		sb.WriteString(theme.Hot.Render("● "+m.locale.Sprintf(locale.MsgWearingFor, r.OpenSince.Format("15:04"))) + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("○ "+m.locale.Sprintf(locale.MsgNotWearing)) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("score   ") + m.locale.Percent(r.CurrentScore) + "\n")
	sb.WriteString(theme.Muted.Render("day at  ") + r.DayStartAt + "\n")
	if m.err != nil {
		sb.WriteString("\n" + theme.Warn.Render("refresh failed: "+m.err.Error()) + "\n")
	}
	for _, w := range r.Warnings {
		sb.WriteString(theme.Warn.Render("! "+w) + "\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
