// Package game implements the guessing-game engine shared by the number and
// letter (hangman) games.
package game

import (
	"fmt"
	"strings"
)

// Level is a difficulty tier selected once per session.
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

// Levels lists every difficulty in menu order.
var Levels = []Level{Easy, Medium, Hard}

func (l Level) String() string {
	switch l {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts a level name, its menu number (1-3) or the Dutch label.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1", "makkelijk":
		return Easy, nil
	case "medium", "2", "gemiddeld":
		return Medium, nil
	case "hard", "3", "moeilijk":
		return Hard, nil
	}
	return Easy, fmt.Errorf("%w: unknown difficulty %q (choose easy, medium or hard)", ErrInvalidInput, s)
}

// Params holds the tuning derived from a Level.
type Params struct {
	MaxAttempts int
	// SecretSpace is the upper bound of the number draw; zero for the letter game.
	SecretSpace int
}

// NumberParams returns the number-game tuning. Harder levels get more
// attempts and a larger range.
func NumberParams(l Level) Params {
	switch l {
	case Medium:
		return Params{MaxAttempts: 10, SecretSpace: 25}
	case Hard:
		return Params{MaxAttempts: 15, SecretSpace: 50}
	default:
		return Params{MaxAttempts: 5, SecretSpace: 10}
	}
}

// LetterParams returns the letter-game tuning. Harder levels get fewer attempts.
func LetterParams(l Level) Params {
	switch l {
	case Medium:
		return Params{MaxAttempts: 15}
	case Hard:
		return Params{MaxAttempts: 10}
	default:
		return Params{MaxAttempts: 20}
	}
}
