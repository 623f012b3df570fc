// Package tui provides the Bubble Tea guessing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/guessr/internal/game"
)

type phase int

const (
	phaseLevel phase = iota
	phasePlaying
	phaseFinished
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	panelStyle   = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	levelKeys    = map[string]game.Level{"1": game.Easy, "2": game.Medium, "3": game.Hard}
	replayKeys   = map[string]bool{"y": true, "j": true, "n": false}
	maxWordWidth = 60
)

// Model implements the Bubble Tea guessing UI for one game.
type Model struct {
	entry   game.Entry
	opts    game.Options
	session *game.Session
	phase   phase
	input   textinput.Model

	message string
	good    bool
	err     error

	rounds int
	won    int

	width  int
	height int
}

// NewModel constructs a guessing TUI model. A non-nil level skips the menu
// for the first round.
func NewModel(entry game.Entry, opts game.Options, level *game.Level) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 16
	input.Width = 16
	m := &Model{entry: entry, opts: opts, input: input, phase: phaseLevel}
	if level != nil {
		m.start(*level)
	}
	return m
}

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Rounds returns the number of finished rounds and how many were won.
func (m *Model) Rounds() (played, won int) {
	return m.rounds, m.won
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseLevel:
			return m.updateLevel(msg)
		case phasePlaying:
			return m.updatePlaying(msg)
		case phaseFinished:
			return m.updateFinished(msg)
		}
	}
	if m.phase == phasePlaying {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateLevel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "q" {
		return m, tea.Quit
	}
	level, ok := levelKeys[msg.String()]
	if !ok {
		m.setMessage("Pick 1, 2 or 3.", false)
		return m, nil
	}
	m.start(level)
	if m.err != nil {
		return m, tea.Quit
	}
	return m, textinput.Blink
}

func (m *Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	raw := m.input.Value()
	m.input.SetValue("")
	outcome, err := m.session.Submit(context.Background(), raw)
	if err != nil {
		if errors.Is(err, game.ErrInvalidInput) {
			m.setMessage(strings.TrimPrefix(err.Error(), game.ErrInvalidInput.Error()+": "), false)
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}
	switch outcome {
	case game.OutcomeCorrect:
		m.setMessage("Good guess!", true)
	case game.OutcomeRepeat:
		m.setMessage(fmt.Sprintf("You already guessed %q.", strings.TrimSpace(raw)), false)
	default:
		m.setMessage(fmt.Sprintf("Wrong! %q is not it.", strings.TrimSpace(raw)), false)
	}
	if m.session.Terminal() {
		m.finish()
	}
	return m, nil
}

func (m *Model) updateFinished(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	again, ok := replayKeys[strings.ToLower(msg.String())]
	if msg.String() == "q" {
		again, ok = false, true
	}
	if !ok {
		return m, nil
	}
	if !again {
		return m, tea.Quit
	}
	m.session = nil
	m.phase = phaseLevel
	m.message = ""
	return m, nil
}

func (m *Model) start(level game.Level) {
	session, err := m.entry.New(level, m.opts)
	if err != nil {
		m.err = fmt.Errorf("failed to start %s: %w", m.entry.Key, err)
		return
	}
	log.Debug().Str("game", session.Game()).Str("difficulty", level.String()).Msg("round started")
	m.session = session
	m.phase = phasePlaying
	m.message = ""
	m.input.Reset()
	if session.Game() == game.LetterGame {
		m.input.Placeholder = "letter"
		m.input.CharLimit = 1
	} else {
		m.input.Placeholder = fmt.Sprintf("1-%d", session.Params().SecretSpace)
		m.input.CharLimit = 16
	}
	m.input.Focus()
}

func (m *Model) finish() {
	m.rounds++
	m.input.Blur()
	m.phase = phaseFinished
	state, _ := m.session.Result()
	if state == game.Won {
		m.won++
		m.setMessage(fmt.Sprintf("You won! The answer was %s.", m.session.Secret()), true)
		return
	}
	m.setMessage(fmt.Sprintf("No attempts left. The answer was %s.", m.session.Secret()), false)
}

func (m *Model) setMessage(text string, good bool) {
	m.message = text
	m.good = good
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{titleStyle.Render(m.entry.Name), ""}
	switch m.phase {
	case phaseLevel:
		lines = append(lines, "Choose a difficulty:")
		for i, level := range game.Levels {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, level))
		}
	case phasePlaying, phaseFinished:
		lines = append(lines, m.renderSession()...)
	}
	if m.message != "" {
		style := badStyle
		if m.good {
			style = goodStyle
		}
		lines = append(lines, "", style.Render(m.message))
	}
	content := panelStyle.Render(strings.Join(lines, "\n"))
	footer := footerStyle.Render(m.renderFooter())
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderSession() []string {
	s := m.session
	lines := []string{mutedStyle.Render(fmt.Sprintf("Difficulty: %s", s.Level()))}
	if s.Game() == game.LetterGame {
		lines = append(lines, "", wordStyle.Render(fitWord(s.Masked(), maxWordWidth)))
		if guessed := s.Guessed(); len(guessed) > 0 {
			letters := make([]string, len(guessed))
			for i, r := range guessed {
				letters[i] = string(r)
			}
			lines = append(lines, mutedStyle.Render("Guessed: "+strings.Join(letters, " ")))
		}
	} else {
		lines = append(lines, "", fmt.Sprintf("Guess a number between 1 and %d", s.Params().SecretSpace))
	}
	lines = append(lines, "", fmt.Sprintf("Attempts left: %d/%d", s.Remaining(), s.Params().MaxAttempts))
	if m.phase == phasePlaying {
		lines = append(lines, m.input.View())
	}
	return lines
}

func (m *Model) renderFooter() string {
	segments := []string{}
	switch m.phase {
	case phaseLevel:
		segments = append(segments, "1-3 choose", "q quit")
	case phasePlaying:
		segments = append(segments, "enter guess", "esc quit")
	case phaseFinished:
		segments = append(segments, "y play again", "n quit")
	}
	if m.rounds > 0 {
		segments = append(segments, fmt.Sprintf("Won %d of %d", m.won, m.rounds))
	}
	return strings.Join(segments, " · ")
}

// fitWord truncates long masked words to the given cell width.
func fitWord(word string, width int) string {
	if runewidth.StringWidth(word) <= width {
		return word
	}
	return runewidth.Truncate(word, width, "…")
}
