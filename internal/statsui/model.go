// Package statsui provides the Bubble Tea score browser.
package statsui

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/guessr/internal/model"
	"github.com/verte-zerg/guessr/internal/stats"
)

const (
	tabSummary = iota
	tabLeaderboard
	tabRecent
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	src stats.Source
	cfg model.StatsConfig

	report stats.Report
	errMsg string

	tabs        []string
	activeTab   int
	leaderboard table.Model
	recent      table.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(src stats.Source, cfg model.StatsConfig) *Model {
	m := &Model{
		src:  src,
		cfg:  cfg,
		tabs: []string{"Summary", "Leaderboard", "Recent"},
	}
	m.leaderboard = newTable(stats.LeaderboardHeaders)
	m.recent = newTable(stats.RecentHeaders)
	m.refreshReport()
	return m
}

func newTable(headers []string) table.Model {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: len(h) + 2}
	}
	return table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(10))
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
		m.resizeTables()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			return m, nil
		case "shift+tab", "left", "h":
			m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		}
	}
	var cmd tea.Cmd
	switch m.activeTab {
	case tabLeaderboard:
		m.leaderboard, cmd = m.leaderboard.Update(msg)
	case tabRecent:
		m.recent, cmd = m.recent.Update(msg)
	}
	return m, cmd
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.cfg)
	if err != nil {
		m.errMsg = "failed to load stats: " + err.Error()
		return
	}
	m.errMsg = ""
	m.report = report
	setRows(&m.leaderboard, stats.LeaderboardRows(report.Players))
	setRows(&m.recent, stats.RecentRows(report.Scores))
}

// setRows replaces the rows and widens columns to fit the content.
func setRows(t *table.Model, rows [][]string) {
	cols := t.Columns()
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
		for j, cell := range row {
			if j < len(cols) && lipgloss.Width(cell)+2 > cols[j].Width {
				cols[j].Width = lipgloss.Width(cell) + 2
			}
		}
	}
	width := 0
	for _, c := range cols {
		width += c.Width
	}
	t.SetColumns(cols)
	t.SetWidth(width)
	t.SetRows(tableRows)
}

func (m *Model) resizeTables() {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	m.leaderboard.SetHeight(h)
	m.recent.SetHeight(h)
}

// View implements tea.Model.
func (m *Model) View() string {
	nav := make([]string, len(m.tabs))
	for i, name := range m.tabs {
		style := inactiveNavStyle
		if i == m.activeTab {
			style = activeNavStyle
		}
		nav[i] = style.Render(name)
	}
	parts := []string{lipgloss.JoinHorizontal(lipgloss.Top, nav...)}
	if m.errMsg != "" {
		parts = append(parts, errorStyle.Render(m.errMsg))
	} else {
		parts = append(parts, m.renderTab())
	}
	parts = append(parts, headerStyle.Render("tab switch · r refresh · q quit"))
	return strings.Join(parts, "\n")
}

func (m *Model) renderTab() string {
	switch m.activeTab {
	case tabLeaderboard:
		if len(m.report.Players) == 0 {
			return "No players found."
		}
		return m.leaderboard.View()
	case tabRecent:
		if len(m.report.Scores) == 0 {
			return "No rounds found."
		}
		return m.recent.View()
	default:
		var buf bytes.Buffer
		if err := stats.RenderSummary(&buf, m.report.Scores, m.report.Window); err != nil {
			return errorStyle.Render(err.Error())
		}
		return strings.TrimRight(buf.String(), "\n")
	}
}
