package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typy/internal/model"
	"github.com/verte-zerg/typy/internal/stats"
)

const (
	chartHeight   = 8
	maxChartWidth = 70
	axisWidth     = 4
)

// SummaryModel shows the result of one session.
type SummaryModel struct {
	metrics model.Metrics
	keys    KeyMap
	help    help.Model

	valueStyle lipgloss.Style
	errorStyle lipgloss.Style
	dataStyle  lipgloss.Style
	titleStyle lipgloss.Style
	axisStyle  lipgloss.Style

	width  int
	height int
}

// NewSummaryModel builds the summary screen in the theme and graph colors.
func NewSummaryModel(metrics model.Metrics, theme model.Theme, graph model.GraphColors) *SummaryModel {
	h := help.New()
	h.Styles.ShortKey = footerStyle
	h.Styles.ShortDesc = footerStyle
	return &SummaryModel{
		metrics:    metrics,
		keys:       DefaultKeyMap(),
		help:       h,
		valueStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Fg)),
		errorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
		dataStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(graph.Data)),
		titleStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(graph.Title)).Bold(true),
		axisStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(graph.Axis)),
	}
}

// Init implements tea.Model.
func (m *SummaryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Close) {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *SummaryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	accStyle := m.valueStyle
	if m.metrics.Incorrect > 0 {
		accStyle = m.errorStyle
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		MetricCard("WPM", fmt.Sprintf("%.2f", m.metrics.WPM), m.valueStyle),
		MetricCard("RAW", fmt.Sprintf("%.2f", m.metrics.RawWPM), m.valueStyle),
		MetricCard("ACCURACY", fmt.Sprintf("%.2f%%", m.metrics.Accuracy), accStyle),
	)
	body := lipgloss.JoinVertical(lipgloss.Left, cards, "", m.renderChart())
	footer := m.help.View(m.keys)
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		return FitLines(body, m.width, m.height)
	}
	placed := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	return placed + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *SummaryModel) renderChart() string {
	lps := m.metrics.LettersPerSecond
	title := m.titleStyle.Render("letters per second")
	if len(lps) == 0 {
		return title + "\n" + m.axisStyle.Render("no full second recorded")
	}
	values := make([]float64, len(lps))
	for i, n := range lps {
		values[i] = float64(n)
	}
	width := maxChartWidth
	if m.width > 0 && m.width-axisWidth-2 < width {
		width = m.width - axisWidth - 2
	}
	if width < 10 {
		width = 10
	}
	rows, maxVal := stats.Chart(values, width, chartHeight)

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, title)
	for i, row := range rows {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprintf("%.0f", maxVal)
		case len(rows) - 1:
			label = "0"
		}
		axis := m.axisStyle.Render(fmt.Sprintf("%*s│", axisWidth-1, label))
		lines = append(lines, axis+m.dataStyle.Render(row))
	}
	lines = append(lines, m.axisStyle.Render(strings.Repeat(" ", axisWidth-1)+"└"+strings.Repeat("─", width)))
	end := fmt.Sprintf("%ds", len(lps))
	gap := width - len(end) - 1
	if gap < 1 {
		gap = 1
	}
	lines = append(lines, m.axisStyle.Render(strings.Repeat(" ", axisWidth)+"1"+strings.Repeat(" ", gap)+end))
	return strings.Join(lines, "\n")
}

// Display runs the summary screen as its own Bubble Tea program.
type Display struct {
	opts []tea.ProgramOption
}

// NewDisplay returns a Display. Options are appended to the defaults.
func NewDisplay(opts ...tea.ProgramOption) *Display {
	return &Display{opts: opts}
}

// ShowSummary blocks until the player closes the summary.
func (d *Display) ShowSummary(ctx context.Context, metrics model.Metrics, theme model.Theme, graph model.GraphColors) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, d.opts...)
	program := tea.NewProgram(NewSummaryModel(metrics, theme, graph), opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run summary: %w", err)
	}
	return nil
}
