// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/guessr/internal/model"
)

const sparkChars = " .:-=+*#%@"

// WinRate returns won/played, or 0 when nothing was played.
func WinRate(won, played int) float64 {
	if played <= 0 {
		return 0
	}
	return float64(won) / float64(played)
}

// AverageAttempts returns the mean number of incorrect guesses.
func AverageAttempts(attemptsSum, played int) float64 {
	if played <= 0 {
		return 0
	}
	return float64(attemptsSum) / float64(played)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for values in [0, 1].
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round(v * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// WinTrend returns the moving-average win rate per round.
func WinTrend(scores []model.ScoreRecord, window int) []float64 {
	values := make([]float64, len(scores))
	for i, s := range scores {
		if s.Won {
			values[i] = 1
		}
	}
	return MovingAverage(values, window)
}

// RenderSummary prints a summary of the rounds.
func RenderSummary(w io.Writer, scores []model.ScoreRecord, window int) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	won := 0
	attempts := 0
	bestStreak, streak := 0, 0
	for _, s := range scores {
		attempts += s.Attempts
		if s.Won {
			won++
			streak++
			if streak > bestStreak {
				bestStreak = streak
			}
		} else {
			streak = 0
		}
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", len(scores)),
		fmt.Sprintf("Won: %d", won),
		fmt.Sprintf("Win rate: %.1f%%", WinRate(won, len(scores))*100),
		fmt.Sprintf("Avg wrong guesses: %.2f", AverageAttempts(attempts, len(scores))),
		fmt.Sprintf("Best streak: %d", bestStreak),
		fmt.Sprintf("Trend: [%s]", Sparkline(WinTrend(scores, window))),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderLeaderboard prints players ranked by TopPlayers.
func RenderLeaderboard(w io.Writer, aggs []model.PlayerAggregate, n int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No players found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Leaderboard"); err != nil {
		return err
	}
	if err := writeLines(w, formatTable(LeaderboardHeaders, LeaderboardRows(TopPlayers(aggs, n)), map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRecent prints the given rounds, newest first.
func RenderRecent(w io.Writer, scores []model.ScoreRecord) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Recent Rounds"); err != nil {
		return err
	}
	if err := writeLines(w, formatTable(RecentHeaders, RecentRows(scores), map[int]bool{5: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// LeaderboardHeaders are the column titles of the leaderboard table.
var LeaderboardHeaders = []string{"#", "Player", "Played", "Won", "Win rate", "Avg wrong"}

// LeaderboardRows formats ranked aggregates as table cells.
func LeaderboardRows(aggs []model.PlayerAggregate) [][]string {
	rows := make([][]string, 0, len(aggs))
	for i, agg := range aggs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			playerLabel(agg.Player),
			fmt.Sprintf("%d", agg.Played),
			fmt.Sprintf("%d", agg.Won),
			fmt.Sprintf("%.1f%%", WinRate(agg.Won, agg.Played)*100),
			fmt.Sprintf("%.2f", AverageAttempts(agg.AttemptsSum, agg.Played)),
		})
	}
	return rows
}

// RecentHeaders are the column titles of the recent rounds table.
var RecentHeaders = []string{"Date", "Player", "Game", "Level", "Result", "Wrong", "Secret"}

// RecentRows formats rounds as table cells, newest first.
func RecentRows(scores []model.ScoreRecord) [][]string {
	rows := make([][]string, 0, len(scores))
	for i := len(scores) - 1; i >= 0; i-- {
		s := scores[i]
		result := "lost"
		if s.Won {
			result = "won"
		}
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			playerLabel(s.Player),
			s.Game,
			s.Difficulty,
			result,
			fmt.Sprintf("%d/%d", s.Attempts, s.MaxAttempts),
			s.Secret,
		})
	}
	return rows
}

func playerLabel(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
