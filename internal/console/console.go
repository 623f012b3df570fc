// Package console runs guessing rounds over plain line-based input and output.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/guessr/internal/game"
)

var (
	yesAnswers = []string{"ja", "yes", "j", "y"}
	noAnswers  = []string{"nee", "no", "n"}
)

// errQuit signals end of input.
var errQuit = errors.New("input closed")

// Runner drives rounds of one game until the player stops.
type Runner struct {
	Entry game.Entry
	Opts  game.Options
	// Level is used for the first round when set; later rounds ask again.
	Level *game.Level

	in  *bufio.Scanner
	out io.Writer
}

// New returns a Runner reading from in and writing prompts to out.
func New(entry game.Entry, opts game.Options, in io.Reader, out io.Writer) *Runner {
	return &Runner{Entry: entry, Opts: opts, in: bufio.NewScanner(in), out: out}
}

// Run plays rounds until the player declines a replay or input ends.
// It returns the number of rounds finished.
func (r *Runner) Run(ctx context.Context) (int, error) {
	r.printf("Welcome to %s! %s.\n", r.Entry.Name, r.Entry.Description)
	rounds := 0
	level := r.Level
	for {
		if level == nil {
			chosen, err := r.askLevel()
			if err != nil {
				return rounds, ignoreQuit(err)
			}
			level = &chosen
		}
		session, err := r.Entry.New(*level, r.Opts)
		if err != nil {
			return rounds, fmt.Errorf("failed to start %s: %w", r.Entry.Key, err)
		}
		log.Debug().Str("game", session.Game()).Str("difficulty", session.Level().String()).Msg("round started")
		if err := r.play(ctx, session); err != nil {
			return rounds, ignoreQuit(err)
		}
		rounds++
		again, err := r.askReplay()
		if err != nil {
			return rounds, ignoreQuit(err)
		}
		if !again {
			r.printf("Thanks for playing!\n")
			return rounds, nil
		}
		level = nil
	}
}

func (r *Runner) askLevel() (game.Level, error) {
	for {
		r.printf("Choose a difficulty:\n")
		for i, level := range game.Levels {
			r.printf("%d. %s\n", i+1, level)
		}
		line, err := r.readLine("Choice: ")
		if err != nil {
			return game.Easy, err
		}
		level, err := game.ParseLevel(line)
		if err != nil {
			r.printf("Invalid choice. Pick 1, 2 or 3.\n")
			continue
		}
		r.printf("You chose %s.\n", level)
		return level, nil
	}
}

func (r *Runner) play(ctx context.Context, s *game.Session) error {
	params := s.Params()
	r.printf("You have %d attempts.\n", params.MaxAttempts)
	for !s.Terminal() {
		r.printf("--------------------\n")
		prompt := fmt.Sprintf("Guess a number between 1 and %d: ", params.SecretSpace)
		if s.Game() == game.LetterGame {
			r.printf("Word: %s\n", s.Masked())
			prompt = "Guess a letter: "
		}
		r.printf("Attempts left: %d\n", s.Remaining())
		line, err := r.readLine(prompt)
		if err != nil {
			return err
		}
		outcome, err := s.Submit(ctx, line)
		if err != nil {
			if errors.Is(err, game.ErrInvalidInput) {
				r.printf("Invalid input: %v. Try again.\n", unwrapMessage(err))
				continue
			}
			return err
		}
		r.printf("%s\n", feedback(s, outcome))
	}
	state, _ := s.Result()
	if state == game.Won {
		r.printf("Congratulations, you guessed it! The answer was %s (%d wrong guesses).\n", s.Secret(), s.Attempts())
	} else {
		r.printf("No attempts left. The answer was %s.\n", s.Secret())
	}
	return nil
}

func feedback(s *game.Session, outcome game.Outcome) string {
	switch outcome {
	case game.OutcomeCorrect:
		if s.Game() == game.LetterGame && !s.Terminal() {
			return "Good guess!"
		}
		return "Correct!"
	case game.OutcomeRepeat:
		return "You already guessed that letter."
	default:
		return "Wrong!"
	}
}

func (r *Runner) askReplay() (bool, error) {
	for {
		line, err := r.readLine("Play again? (yes/no): ")
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if contains(yesAnswers, answer) {
			return true, nil
		}
		if contains(noAnswers, answer) {
			return false, nil
		}
		r.printf("Invalid choice. Answer yes or no.\n")
	}
}

func (r *Runner) readLine(prompt string) (string, error) {
	r.printf("%s", prompt)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		r.printf("\n")
		return "", errQuit
	}
	return r.in.Text(), nil
}

func (r *Runner) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		log.Debug().Err(err).Msg("failed to write prompt")
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func ignoreQuit(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// unwrapMessage drops the "invalid input: " prefix from wrapped errors.
func unwrapMessage(err error) string {
	return strings.TrimPrefix(err.Error(), game.ErrInvalidInput.Error()+": ")
}
