// Package statsui provides the Bubble Tea score history interface.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typy/internal/model"
	"github.com/verte-zerg/typy/internal/stats"
	"github.com/verte-zerg/typy/internal/tui"
)

const trendWindow = 3

var (
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Source reads stored scores.
type Source interface {
	ListScores(ctx context.Context) ([]model.Score, error)
	Averages(ctx context.Context) (model.Averages, error)
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model implements the Bubble Tea history UI.
type Model struct {
	source Source

	scores   []model.Score
	averages model.Averages
	errMsg   string

	table table.Model
	keys  keyMap
	help  help.Model

	width  int
	height int
}

// NewModel constructs a history UI model and loads the scores.
func NewModel(source Source) *Model {
	m := &Model{
		source: source,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.table = buildScoreTable(nil, 80, 10)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			m.refresh()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := tui.FitLines(m.renderBody(), m.width, bodyHeight)
	return strings.Join([]string{tui.FitLines(header, m.width, lipgloss.Height(header)), body, footer}, "\n")
}

func (m *Model) refresh() {
	ctx := context.Background()
	scores, err := m.source.ListScores(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	avg, err := m.source.Averages(ctx)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.scores = scores
	m.averages = avg
	m.table.SetRows(scoreRows(scores))
}

func (m *Model) updateLayout() {
	header := m.renderHeader()
	footer := m.renderFooter()
	height := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if height < 1 {
		height = 1
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(height)
}

func (m *Model) renderHeader() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		tui.MetricCard("Sessions", fmt.Sprintf("%d", m.averages.Count), cardValueStyle),
		tui.MetricCard("Avg WPM", fmt.Sprintf("%.1f", m.averages.WPM), cardValueStyle),
		tui.MetricCard("Avg Raw", fmt.Sprintf("%.1f", m.averages.Raw), cardValueStyle),
		tui.MetricCard("Avg Acc", fmt.Sprintf("%.1f%%", m.averages.Accuracy), cardValueStyle),
	)
	return cards
}

func (m *Model) renderBody() string {
	if len(m.scores) == 0 {
		return "No scores found."
	}
	trend := stats.Sparkline(stats.MovingAverage(stats.WPMSeries(stats.Chronological(m.scores)), trendWindow))
	line := headerStyle.Render(tui.TruncateLine(fmt.Sprintf("Trend (oldest to newest): %s", trend), m.width))
	return line + "\n\n" + tableMutedStyle.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	helpLine := m.help.View(m.keys)
	if m.errMsg != "" {
		return helpLine + "\n" + errorStyle.Render(tui.TruncateLine(m.errMsg, m.width))
	}
	return helpLine
}

func scoreRows(scores []model.Score) []table.Row {
	cells := stats.ScoreRows(scores)
	rows := make([]table.Row, len(cells))
	for i, c := range cells {
		rows[i] = table.Row(c)
	}
	return rows
}

func buildScoreTable(scores []model.Score, width, height int) table.Model {
	columns := []table.Column{
		{Title: stats.ScoreHeaders[0], Width: 10},
		{Title: stats.ScoreHeaders[1], Width: 8},
		{Title: stats.ScoreHeaders[2], Width: 5},
		{Title: stats.ScoreHeaders[3], Width: 5},
		{Title: stats.ScoreHeaders[4], Width: 9},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(scoreRows(scores)),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	t.SetWidth(width)
	t.SetStyles(scoreTableStyles())
	return t
}

func scoreTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// Run starts the history UI on the terminal.
func Run(ctx context.Context, source Source) error {
	program := tea.NewProgram(NewModel(source), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats ui: %w", err)
	}
	return nil
}
