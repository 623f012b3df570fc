// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/guessr/internal/model"
)

// Source is the read side of the score store.
type Source interface {
	ListScores(ctx context.Context, cfg model.StatsConfig) ([]model.ScoreRecord, error)
	ListPlayerAggregates(ctx context.Context, cfg model.StatsConfig) ([]model.PlayerAggregate, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Scores  []model.ScoreRecord
	Players []model.PlayerAggregate
	Window  int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, src Source, cfg model.StatsConfig) (Report, error) {
	scores, err := src.ListScores(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	players, err := src.ListPlayerAggregates(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 {
		players = aggregatePlayers(scores)
	}
	return Report{
		Scores:  scores,
		Players: TopPlayers(players, 0),
		Window:  cfg.Window,
	}, nil
}

// aggregatePlayers rebuilds per-player totals from an already limited slice of rounds.
func aggregatePlayers(scores []model.ScoreRecord) []model.PlayerAggregate {
	byPlayer := map[string]*model.PlayerAggregate{}
	order := []string{}
	for _, s := range scores {
		agg, ok := byPlayer[s.Player]
		if !ok {
			agg = &model.PlayerAggregate{Player: s.Player}
			byPlayer[s.Player] = agg
			order = append(order, s.Player)
		}
		agg.Played++
		agg.AttemptsSum += s.Attempts
		if s.Won {
			agg.Won++
		}
	}
	out := make([]model.PlayerAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, *byPlayer[name])
	}
	return out
}

// Render writes the full plain-text report.
func (r Report) Render(w io.Writer) error {
	if err := RenderSummary(w, r.Scores, r.Window); err != nil {
		return err
	}
	if err := RenderLeaderboard(w, r.Players, 10); err != nil {
		return err
	}
	recent := r.Scores
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	return RenderRecent(w, recent)
}
