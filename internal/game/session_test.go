package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/guessr/internal/generator"
	"github.com/verte-zerg/guessr/internal/model"
)

type recorderStub struct {
	records []model.ScoreRecord
	err     error
}

func (r *recorderStub) Record(_ context.Context, rec model.ScoreRecord) error {
	r.records = append(r.records, rec)
	return r.err
}

type wordsStub map[Level][]string

func (w wordsStub) WordsFor(level Level) ([]string, error) {
	return w[level], nil
}

func submitAll(t *testing.T, s *Session, guesses ...string) []Outcome {
	t.Helper()
	outcomes := make([]Outcome, 0, len(guesses))
	for _, g := range guesses {
		outcome, err := s.Submit(context.Background(), g)
		if err != nil {
			t.Fatalf("submit %q: %v", g, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func TestNumberSessionWins(t *testing.T) {
	rec := &recorderStub{}
	s := NewNumberWithSecret(Easy, 7, Options{Player: "ann", Recorder: rec})
	if s.Params().MaxAttempts != 5 {
		t.Fatalf("expected 5 attempts on easy, got %d", s.Params().MaxAttempts)
	}
	outcomes := submitAll(t, s, "3", "9", "7")
	want := []Outcome{OutcomeIncorrect, OutcomeIncorrect, OutcomeCorrect}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Fatalf("guess %d: expected %s, got %s", i, want[i], outcomes[i])
		}
	}
	state, ok := s.Result()
	if !ok || state != Won {
		t.Fatalf("expected won, got %s (terminal=%v)", state, ok)
	}
	if s.Attempts() != 2 {
		t.Fatalf("expected 2 attempts, got %d", s.Attempts())
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected one score record, got %d", len(rec.records))
	}
	got := rec.records[0]
	if !got.Won || got.Attempts != 2 || got.Player != "ann" || got.Game != NumberGame || got.Secret != "7" {
		t.Fatalf("unexpected score record: %+v", got)
	}
}

func TestNumberSessionLoses(t *testing.T) {
	s := newSession(NumberGame, Easy, Params{MaxAttempts: 2, SecretSpace: 10}, &numberRule{answer: 7}, Options{})
	submitAll(t, s, "1")
	if s.Terminal() {
		t.Fatalf("expected session to continue after first miss")
	}
	submitAll(t, s, "2")
	if s.State() != Lost {
		t.Fatalf("expected lost, got %s", s.State())
	}
	if s.Attempts() != 2 {
		t.Fatalf("expected 2 attempts, got %d", s.Attempts())
	}
}

func TestNumberSessionInvalidInputIsFree(t *testing.T) {
	s := NewNumberWithSecret(Easy, 7, Options{})
	_, err := s.Submit(context.Background(), "abc")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if s.Attempts() != 0 || s.State() != InProgress {
		t.Fatalf("invalid input changed the session: attempts=%d state=%s", s.Attempts(), s.State())
	}
}

func TestNumberSessionOutOfRangeIsIncorrect(t *testing.T) {
	s := NewNumberWithSecret(Easy, 7, Options{})
	outcomes := submitAll(t, s, "500", "-3")
	if outcomes[0] != OutcomeIncorrect || outcomes[1] != OutcomeIncorrect {
		t.Fatalf("expected out-of-range guesses to be incorrect, got %v", outcomes)
	}
	if s.Attempts() != 2 {
		t.Fatalf("expected 2 attempts, got %d", s.Attempts())
	}
}

func TestLetterSessionRepeatCostsNothing(t *testing.T) {
	s, err := NewLetterWithSecret(Easy, "cat", Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	outcomes := submitAll(t, s, "c", "c")
	if outcomes[1] != OutcomeRepeat {
		t.Fatalf("expected repeat, got %s", outcomes[1])
	}
	if s.Attempts() != 0 {
		t.Fatalf("expected 0 attempts after repeat, got %d", s.Attempts())
	}
	submitAll(t, s, "x")
	if s.Attempts() != 1 || s.State() != InProgress {
		t.Fatalf("expected 1 attempt and in progress, got %d %s", s.Attempts(), s.State())
	}
	for i := 0; i < 5; i++ {
		outcome, err := s.Submit(context.Background(), "X")
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if outcome != OutcomeRepeat {
			t.Fatalf("expected repeated wrong letter to be a repeat, got %s", outcome)
		}
	}
	if s.Attempts() != 1 {
		t.Fatalf("repeats changed attempts: %d", s.Attempts())
	}
}

func TestLetterSessionWins(t *testing.T) {
	rec := &recorderStub{}
	s, err := NewLetterWithSecret(Medium, "cat", Options{Recorder: rec})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	submitAll(t, s, "c", "a")
	if s.Masked() != "c a _" {
		t.Fatalf("unexpected masked word %q", s.Masked())
	}
	submitAll(t, s, "t")
	if s.State() != Won || s.Attempts() != 0 {
		t.Fatalf("expected won with 0 attempts, got %s %d", s.State(), s.Attempts())
	}
	if len(rec.records) != 1 || !rec.records[0].Won || rec.records[0].Difficulty != "medium" {
		t.Fatalf("unexpected records: %+v", rec.records)
	}
	if got := string(s.Guessed()); got != "act" {
		t.Fatalf("expected sorted guesses, got %q", got)
	}
}

func TestLetterSessionLosesWithinBudget(t *testing.T) {
	s, err := NewLetterWithSecret(Hard, "cat", Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	misses := "bdefghijkl"
	for i, r := range misses {
		if s.Terminal() {
			t.Fatalf("session ended early after %d misses", i)
		}
		submitAll(t, s, string(r))
		if s.Attempts() != i+1 {
			t.Fatalf("expected attempts to grow by one, got %d after %d misses", s.Attempts(), i+1)
		}
	}
	if s.State() != Lost {
		t.Fatalf("expected lost after %d misses, got %s", len(misses), s.State())
	}
}

func TestLetterSessionRejectsMultiCharacterInput(t *testing.T) {
	s, err := NewLetterWithSecret(Easy, "cat", Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, raw := range []string{"cat", "", " ", "7", "?"} {
		if _, err := s.Submit(context.Background(), raw); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", raw, err)
		}
	}
	if s.Attempts() != 0 || len(s.Guessed()) != 0 {
		t.Fatalf("invalid input changed the session")
	}
}

func TestTerminalSessionRejectsGuesses(t *testing.T) {
	rec := &recorderStub{}
	s := NewNumberWithSecret(Easy, 4, Options{Recorder: rec})
	submitAll(t, s, "4")
	if _, err := s.Submit(context.Background(), "5"); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("expected session over, got %v", err)
	}
	if s.State() != Won || s.Attempts() != 0 || len(rec.records) != 1 {
		t.Fatalf("terminal session changed")
	}
}

func TestRecorderFailureKeepsState(t *testing.T) {
	rec := &recorderStub{err: errors.New("disk full")}
	s := NewNumberWithSecret(Easy, 4, Options{Recorder: rec})
	submitAll(t, s, "4")
	if s.State() != Won {
		t.Fatalf("expected won despite recorder failure, got %s", s.State())
	}
}

func TestScoreRecordTimestamps(t *testing.T) {
	rec := &recorderStub{}
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	s := NewNumberWithSecret(Easy, 1, Options{Recorder: rec, Now: now})
	submitAll(t, s, "1")
	got := rec.records[0]
	if !got.EndedAt.After(got.StartedAt) {
		t.Fatalf("expected end after start: %v %v", got.StartedAt, got.EndedAt)
	}
}

func TestNewLetterDrawsFromWordSource(t *testing.T) {
	words := wordsStub{Easy: {"Kat"}}
	s, err := NewLetter(Easy, words, Options{Generator: generator.NewSeeded(1)})
	if err != nil {
		t.Fatalf("new letter session: %v", err)
	}
	if s.Secret() != "kat" {
		t.Fatalf("expected lower-cased secret, got %q", s.Secret())
	}
	if s.Masked() != "_ _ _" {
		t.Fatalf("unexpected masked word %q", s.Masked())
	}
}

func TestNewLetterMissingWords(t *testing.T) {
	if _, err := NewLetter(Hard, wordsStub{Easy: {"kat"}}, Options{}); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected configuration missing, got %v", err)
	}
	if _, err := NewLetter(Easy, nil, Options{}); !errors.Is(err, ErrConfigurationMissing) {
		t.Fatalf("expected configuration missing for nil source, got %v", err)
	}
}

func TestNewNumberDrawsWithinSpace(t *testing.T) {
	gen := generator.NewSeeded(3)
	for _, level := range Levels {
		for i := 0; i < 50; i++ {
			s := NewNumber(level, Options{Generator: gen})
			n, err := ParseNumber(s.Secret())
			if err != nil {
				t.Fatalf("secret is not a number: %v", err)
			}
			if n < 1 || n > NumberParams(level).SecretSpace {
				t.Fatalf("secret %d out of range for %s", n, level)
			}
		}
	}
}

func TestLetterSessionShowsNonLetters(t *testing.T) {
	s, err := NewLetterWithSecret(Easy, "co-op", Options{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.Masked() != "_ _ - _ _" {
		t.Fatalf("unexpected masked word %q", s.Masked())
	}
	submitAll(t, s, "c", "o", "p")
	if s.State() != Won {
		t.Fatalf("expected won, got %s", s.State())
	}
}
