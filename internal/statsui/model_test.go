package statsui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/guessr/internal/model"
)

type sourceStub struct {
	scores []model.ScoreRecord
	err    error
}

func (s sourceStub) ListScores(context.Context, model.StatsConfig) ([]model.ScoreRecord, error) {
	return s.scores, s.err
}

func (s sourceStub) ListPlayerAggregates(context.Context, model.StatsConfig) ([]model.PlayerAggregate, error) {
	return []model.PlayerAggregate{{Player: "ann", Played: 2, Won: 1, AttemptsSum: 3}}, s.err
}

func TestTabsRenderReport(t *testing.T) {
	ended := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	src := sourceStub{scores: []model.ScoreRecord{
		{Player: "ann", Game: "number", Difficulty: "easy", Won: true, Attempts: 1, MaxAttempts: 5, Secret: "4", EndedAt: ended},
		{Player: "ann", Game: "hangman", Difficulty: "hard", Won: false, Attempts: 10, MaxAttempts: 10, Secret: "zephyr", EndedAt: ended.Add(time.Hour)},
	}}
	m := NewModel(src, model.StatsConfig{})
	if !strings.Contains(m.View(), "Rounds: 2") {
		t.Fatalf("expected summary tab:\n%s", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabLeaderboard || !strings.Contains(m.View(), "ann") {
		t.Fatalf("expected leaderboard tab:\n%s", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != tabRecent || !strings.Contains(m.View(), "zephyr") {
		t.Fatalf("expected recent tab:\n%s", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != tabLeaderboard {
		t.Fatalf("expected shift+tab to go back")
	}
}

func TestLoadErrorIsShown(t *testing.T) {
	m := NewModel(sourceStub{err: errors.New("locked")}, model.StatsConfig{})
	if !strings.Contains(m.View(), "failed to load stats: locked") {
		t.Fatalf("expected error view:\n%s", m.View())
	}
}
