package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/guessr/internal/game"
	"github.com/verte-zerg/guessr/internal/model"
)

type recorderStub struct {
	records []model.ScoreRecord
}

func (r *recorderStub) Record(_ context.Context, rec model.ScoreRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func letterEntry(word string) game.Entry {
	return game.Entry{
		Key:  game.LetterGame,
		Name: "Hangman",
		New: func(level game.Level, opts game.Options) (*game.Session, error) {
			return game.NewLetterWithSecret(level, word, opts)
		},
	}
}

func numberEntry(secret int) game.Entry {
	return game.Entry{
		Key:  game.NumberGame,
		Name: "Number guess",
		New: func(level game.Level, opts game.Options) (*game.Session, error) {
			return game.NewNumberWithSecret(level, secret, opts), nil
		},
	}
}

func press(m *Model, key string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func guess(m *Model, value string) {
	m.input.SetValue(value)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func TestLevelMenuStartsRound(t *testing.T) {
	m := NewModel(letterEntry("cat"), game.Options{}, nil)
	if !containsAll(m.View(), []string{"Choose a difficulty", "1. easy", "3. hard"}) {
		t.Fatalf("expected difficulty menu:\n%s", m.View())
	}
	press(m, "7")
	if m.phase != phaseLevel || !strings.Contains(m.View(), "Pick 1, 2 or 3.") {
		t.Fatalf("expected invalid level hint")
	}
	press(m, "3")
	if m.phase != phasePlaying || m.session.Level() != game.Hard {
		t.Fatalf("expected hard round to start")
	}
	if !containsAll(m.View(), []string{"_ _ _", "Attempts left: 10/10"}) {
		t.Fatalf("unexpected playing view:\n%s", m.View())
	}
}

func TestLetterRoundWinAndReplay(t *testing.T) {
	rec := &recorderStub{}
	level := game.Easy
	m := NewModel(letterEntry("cat"), game.Options{Recorder: rec}, &level)
	guess(m, "c")
	guess(m, "c")
	if !strings.Contains(m.View(), "You already guessed") {
		t.Fatalf("expected repeat message:\n%s", m.View())
	}
	guess(m, "z")
	if m.session.Attempts() != 1 {
		t.Fatalf("expected 1 attempt, got %d", m.session.Attempts())
	}
	if !strings.Contains(m.View(), "Guessed: c z") {
		t.Fatalf("expected guessed letters:\n%s", m.View())
	}
	guess(m, "a")
	guess(m, "t")
	if m.phase != phaseFinished {
		t.Fatalf("expected finished phase")
	}
	if !containsAll(m.View(), []string{"You won! The answer was cat.", "Won 1 of 1"}) {
		t.Fatalf("unexpected finished view:\n%s", m.View())
	}
	if len(rec.records) != 1 || !rec.records[0].Won {
		t.Fatalf("unexpected records: %+v", rec.records)
	}

	press(m, "y")
	if m.phase != phaseLevel || m.session != nil {
		t.Fatalf("expected replay to return to the level menu")
	}
	press(m, "2")
	if m.session == nil || m.session.Attempts() != 0 || m.session.Level() != game.Medium {
		t.Fatalf("expected a fresh medium session")
	}
}

func TestNumberRoundInvalidInputAndLoss(t *testing.T) {
	level := game.Easy
	m := NewModel(numberEntry(7), game.Options{}, &level)
	guess(m, "abc")
	if m.session.Attempts() != 0 || !strings.Contains(m.View(), "not a whole number") {
		t.Fatalf("expected invalid input message without cost:\n%s", m.View())
	}
	for _, g := range []string{"1", "2", "3", "4", "5"} {
		guess(m, g)
	}
	state, ok := m.session.Result()
	if !ok || state != game.Lost {
		t.Fatalf("expected lost round, got %s", state)
	}
	if !strings.Contains(m.View(), "No attempts left. The answer was 7.") {
		t.Fatalf("unexpected loss view:\n%s", m.View())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestStartFailureIsReported(t *testing.T) {
	level := game.Hard
	entry := game.DefaultRegistry(nil).Games()[0]
	m := NewModel(entry, game.Options{}, &level)
	if m.Err() == nil {
		t.Fatalf("expected start error for missing word list")
	}
}

func TestFitWordTruncates(t *testing.T) {
	if got := fitWord("c a t", 10); got != "c a t" {
		t.Fatalf("unexpected fit: %q", got)
	}
	if got := fitWord(strings.Repeat("_ ", 40), 10); len([]rune(got)) > 10 {
		t.Fatalf("expected truncation, got %q", got)
	}
}
