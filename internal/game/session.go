package game

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/guessr/internal/generator"
	"github.com/verte-zerg/guessr/internal/model"
)

// Game keys used in score records and the registry.
const (
	NumberGame = "number"
	LetterGame = "hangman"
)

// State is the lifecycle position of a Session.
type State int

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no more guesses are accepted.
func (s State) Terminal() bool {
	return s == Won || s == Lost
}

// Recorder receives the score of every finished session.
type Recorder interface {
	Record(ctx context.Context, rec model.ScoreRecord) error
}

// WordSource provides candidate secrets for the letter game.
type WordSource interface {
	WordsFor(level Level) ([]string, error)
}

// Options carries the collaborators of a Session. Zero values are usable.
type Options struct {
	Player    string
	Recorder  Recorder
	Generator *generator.Generator
	Now       func() time.Time
}

// rule is the part that differs between the number and letter games.
type rule interface {
	evaluate(raw string) (Outcome, error)
	solved() bool
	secret() string
	masked() string
	guessed() []rune
}

// Session is a single round. It is created fresh per round and never reused.
type Session struct {
	game      string
	level     Level
	params    Params
	rule      rule
	attempts  int
	state     State
	player    string
	recorder  Recorder
	now       func() time.Time
	startedAt time.Time
}

// NewNumber starts a number-guessing round with a secret drawn from [1, SecretSpace].
func NewNumber(level Level, opts Options) *Session {
	params := NumberParams(level)
	return NewNumberWithSecret(level, opts.generator().Number(params.SecretSpace), opts)
}

// NewNumberWithSecret starts a number-guessing round with a known secret.
func NewNumberWithSecret(level Level, secret int, opts Options) *Session {
	return newSession(NumberGame, level, NumberParams(level), &numberRule{answer: secret}, opts)
}

// NewLetter starts a hangman round with a word drawn from words.
func NewLetter(level Level, words WordSource, opts Options) (*Session, error) {
	if words == nil {
		return nil, fmt.Errorf("%w: no word source", ErrConfigurationMissing)
	}
	list, err := words.WordsFor(level)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no words for %s", ErrConfigurationMissing, level)
	}
	return NewLetterWithSecret(level, opts.generator().Word(list), opts)
}

// NewLetterWithSecret starts a hangman round with a known word.
func NewLetterWithSecret(level Level, word string, opts Options) (*Session, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, fmt.Errorf("%w: empty secret word", ErrConfigurationMissing)
	}
	r := &letterRule{word: word, guessedSet: map[rune]struct{}{}}
	return newSession(LetterGame, level, LetterParams(level), r, opts), nil
}

func newSession(game string, level Level, params Params, r rule, opts Options) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		game:      game,
		level:     level,
		params:    params,
		rule:      r,
		state:     InProgress,
		player:    opts.Player,
		recorder:  opts.Recorder,
		now:       now,
		startedAt: now(),
	}
}

func (o Options) generator() *generator.Generator {
	if o.Generator != nil {
		return o.Generator
	}
	return generator.New()
}

// Submit validates one raw guess and advances the state machine.
// ErrInvalidInput and ErrSessionOver leave the session untouched.
func (s *Session) Submit(ctx context.Context, raw string) (Outcome, error) {
	if s.state.Terminal() {
		return 0, ErrSessionOver
	}
	outcome, err := s.rule.evaluate(raw)
	if err != nil {
		return 0, err
	}
	switch outcome {
	case OutcomeCorrect:
		if s.rule.solved() {
			s.finish(ctx, Won)
		}
	case OutcomeIncorrect:
		s.attempts++
		if s.attempts >= s.params.MaxAttempts {
			s.finish(ctx, Lost)
		}
	case OutcomeRepeat:
	}
	return outcome, nil
}

func (s *Session) finish(ctx context.Context, state State) {
	s.state = state
	if s.recorder == nil {
		return
	}
	rec := model.ScoreRecord{
		Player:      s.player,
		Game:        s.game,
		Difficulty:  s.level.String(),
		Won:         state == Won,
		Attempts:    s.attempts,
		MaxAttempts: s.params.MaxAttempts,
		Secret:      s.rule.secret(),
		StartedAt:   s.startedAt,
		EndedAt:     s.now(),
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		log.Error().Err(err).Str("game", s.game).Str("player", s.player).Msg("failed to record score")
	}
}

// Game returns the game key.
func (s *Session) Game() string { return s.game }

// Level returns the difficulty the session was created with.
func (s *Session) Level() Level { return s.level }

// Params returns the difficulty tuning in effect.
func (s *Session) Params() Params { return s.params }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Terminal reports whether the round has ended.
func (s *Session) Terminal() bool { return s.state.Terminal() }

// Result returns Won or Lost once terminal; ok is false while in progress.
func (s *Session) Result() (State, bool) {
	return s.state, s.state.Terminal()
}

// Attempts returns the number of incorrect guesses so far.
func (s *Session) Attempts() int { return s.attempts }

// Remaining returns how many incorrect guesses are left.
func (s *Session) Remaining() int { return s.params.MaxAttempts - s.attempts }

// Secret returns the secret as text.
func (s *Session) Secret() string { return s.rule.secret() }

// Masked returns the word with unguessed letters hidden. Empty for the number game.
func (s *Session) Masked() string { return s.rule.masked() }

// Guessed returns the letters guessed so far in alphabetical order.
func (s *Session) Guessed() []rune { return s.rule.guessed() }

type numberRule struct {
	answer int
	hit    bool
}

func (r *numberRule) evaluate(raw string) (Outcome, error) {
	guess, err := ParseNumber(raw)
	if err != nil {
		return 0, err
	}
	outcome := ValidateNumber(guess, r.answer)
	if outcome == OutcomeCorrect {
		r.hit = true
	}
	return outcome, nil
}

func (r *numberRule) solved() bool { return r.hit }
func (r *numberRule) secret() string { return strconv.Itoa(r.answer) }
func (r *numberRule) masked() string { return "" }
func (r *numberRule) guessed() []rune { return nil }

type letterRule struct {
	word       string
	guessedSet map[rune]struct{}
}

func (r *letterRule) evaluate(raw string) (Outcome, error) {
	letter, err := ParseLetter(raw)
	if err != nil {
		return 0, err
	}
	outcome := ValidateLetter(letter, r.word, r.guessedSet)
	if outcome != OutcomeRepeat {
		r.guessedSet[letter] = struct{}{}
	}
	return outcome, nil
}

func (r *letterRule) solved() bool {
	for _, ch := range r.word {
		if !r.revealed(ch) {
			return false
		}
	}
	return true
}

// revealed reports whether ch is shown. Non-letters can never be guessed, so they always are.
func (r *letterRule) revealed(ch rune) bool {
	if !unicode.IsLetter(ch) {
		return true
	}
	_, ok := r.guessedSet[ch]
	return ok
}

func (r *letterRule) secret() string { return r.word }

func (r *letterRule) masked() string {
	parts := make([]string, 0, len(r.word))
	for _, ch := range r.word {
		if r.revealed(ch) {
			parts = append(parts, string(ch))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

func (r *letterRule) guessed() []rune {
	out := make([]rune, 0, len(r.guessedSet))
	for ch := range r.guessedSet {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
