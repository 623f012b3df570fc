// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/guessr/internal/model"
)

// TopPlayers ranks players by wins, then win rate, then name. n <= 0 keeps everyone.
func TopPlayers(aggs []model.PlayerAggregate, n int) []model.PlayerAggregate {
	if len(aggs) == 0 {
		return nil
	}
	items := make([]model.PlayerAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Won != items[j].Won {
			return items[i].Won > items[j].Won
		}
		ri := WinRate(items[i].Won, items[i].Played)
		rj := WinRate(items[j].Won, items[j].Played)
		if ri != rj {
			return ri > rj
		}
		return items[i].Player < items[j].Player
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
