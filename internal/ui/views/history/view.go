package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackingdto "wearlog/internal/modules/tracking/dto"
	"wearlog/internal/platform/locale"
	"wearlog/internal/ui/theme"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

type dayItem struct {
	bucket trackingdto.BucketOutput
	locale locale.Locale
}

func (i dayItem) Title() string { return i.bucket.Date }
func (i dayItem) Description() string {
	desc := i.locale.Percent(i.bucket.Total)
	if i.bucket.IsPartialDay {
		desc += "  ↳ " + i.locale.Sprintf(locale.MsgPartialDay)
	}
	return desc
}
func (i dayItem) FilterValue() string { return i.bucket.Date }

type Model struct {
	locale locale.Locale
	list   list.Model
	detail viewport.Model
	report trackingdto.ReportOutput
	width  int
	height int
}

func New(loc locale.Locale) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)
	return Model{locale: loc, list: l, detail: vp}
}

// SetReport refreshes the day list, keeping the selection when possible.
func (m *Model) SetReport(report trackingdto.ReportOutput) tea.Cmd {
	m.report = report
	items := make([]list.Item, len(report.GroupedSessions))
	for i, b := range report.GroupedSessions {
		items[i] = dayItem{bucket: b, locale: m.locale}
	}
	cmd := m.list.SetItems(items)
	m.detail.SetContent(m.renderDetail())
	return cmd
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.resize()
	}
	var cmds []tea.Cmd
	prev := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(m.width-listW-4, 1)
	m.detail.Height = max(m.height-4, 1)
}

func (m Model) renderDetail() string {
	r := m.report
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress") + "  " + Sparkline(r.HistoricalProgress, 100) + "\n")
	sb.WriteString(theme.Title.Render("Score   ") + "  " + Sparkline(r.HistoricalScores, 100) + "\n")
	st := r.Stats
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d days · goal met %d · mean %s · median %s · σ %.1f",
		st.Days, st.DaysGoalMet, m.locale.Percent(st.MeanProgress), m.locale.Percent(st.MedianProgress), st.StdDevProgress)) + "\n\n")

	item, ok := m.list.SelectedItem().(dayItem)
	if !ok {
		sb.WriteString(theme.Muted.Render("no recorded day"))
		return sb.String()
	}
	b := item.bucket
	sb.WriteString(theme.Title.Render(b.Date) + "  " + m.locale.Percent(b.Total) + "\n\n")
	for _, seg := range b.Segments {
		end := "…"
		if seg.End != nil {
			end = seg.End.Format("15:04")
		}
		sb.WriteString(fmt.Sprintf("  %s → %-5s  %s\n", seg.Start.Format("15:04"), end, seg.Duration.Truncate(time.Second)))
	}
	return sb.String()
}

// Sparkline renders values scaled against ceil, clamping above it.
func Sparkline(values []float64, ceil float64) string {
	if len(values) == 0 || ceil <= 0 {
		return theme.Muted.Render("–")
	}
	var sb strings.Builder
	top := len(sparkRunes) - 1
	for _, v := range values {
		idx := int(math.Round(math.Max(0, math.Min(v, ceil)) / ceil * float64(top)))
		sb.WriteRune(sparkRunes[idx])
	}
	return sb.String()
}
