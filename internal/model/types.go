// Package model defines shared data structures.
package model

import "time"

// PlayConfig defines settings for a round of play.
type PlayConfig struct {
	Game        string
	Player      string
	Difficulty  string
	WordListDir string
	Plain       bool
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Player string
	Game   string
	Since  *time.Time
	Last   int
	Window int
}

// ScoreRecord captures the outcome of a finished round.
type ScoreRecord struct {
	ID          int64
	Player      string
	Game        string
	Difficulty  string
	Won         bool
	Attempts    int
	MaxAttempts int
	Secret      string
	StartedAt   time.Time
	EndedAt     time.Time
}

// PlayerAggregate summarizes all rounds of a single player.
type PlayerAggregate struct {
	Player      string
	Played      int
	Won         int
	AttemptsSum int
}
