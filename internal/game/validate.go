package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrInvalidInput marks a guess that could not be parsed. It never costs an attempt.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfigurationMissing marks a difficulty without a word list.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrSessionOver is returned for guesses submitted after the round ended.
	ErrSessionOver = errors.New("session is over")
)

// Outcome is the result of validating one guess.
type Outcome int

const (
	// OutcomeCorrect is a matching number or a new letter present in the secret.
	OutcomeCorrect Outcome = iota
	// OutcomeIncorrect is a wrong number or a new letter absent from the secret.
	OutcomeIncorrect
	// OutcomeRepeat is a letter that was already guessed.
	OutcomeRepeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ParseNumber parses a numeric guess. Out-of-range values are valid guesses.
func ParseNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidInput, raw)
	}
	return n, nil
}

// ValidateNumber compares a numeric guess with the secret.
func ValidateNumber(guess, secret int) Outcome {
	if guess == secret {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// ParseLetter parses a single-letter guess and folds it to lower case.
func ParseLetter(raw string) (rune, error) {
	s := strings.TrimSpace(raw)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: enter exactly one letter", ErrInvalidInput)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return 0, fmt.Errorf("%w: %q is not a letter", ErrInvalidInput, r)
	}
	return unicode.ToLower(r), nil
}

// ValidateLetter classifies a letter guess. A letter already in guessed is a
// repeat whether or not it occurs in the secret.
func ValidateLetter(letter rune, secret string, guessed map[rune]struct{}) Outcome {
	if _, ok := guessed[letter]; ok {
		return OutcomeRepeat
	}
	if strings.ContainsRune(secret, letter) {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}
