package aggregator

import (
	"sort"
	"time"

	"github.com/supercweida/weida-picks/internal/normalizer"
	"github.com/supercweida/weida-picks/internal/schedule"
	"github.com/supercweida/weida-picks/pkg/models"
)

// Aggregator turns a raw fetch payload into per-week dashboard rows
// with autopick flags applied. It never errors: malformed upstream
// data just produces fewer or sparser rows.
type Aggregator struct {
	anchor     schedule.SeasonAnchor
	normalizer *normalizer.Normalizer
}

// New creates an aggregator for one season anchor and bookmaker.
func New(anchor schedule.SeasonAnchor, n *normalizer.Normalizer) *Aggregator {
	return &Aggregator{
		anchor:     anchor,
		normalizer: n,
	}
}

// BookKey returns the bookmaker key rows are normalized against.
func (a *Aggregator) BookKey() string {
	return a.normalizer.BookKey()
}

// CurrentWeek returns the week number containing now.
func (a *Aggregator) CurrentWeek(now time.Time) int {
	return a.anchor.WeekForInstant(now)
}

// Week filters raw games to one week's window (inclusive on both
// ends), normalizes the survivors in input order, and marks the
// autopick. Games without a matching bookmaker simply disappear.
func (a *Aggregator) Week(rawGames []models.RawGame, week int) []models.NormalizedGame {
	window := a.anchor.WindowForWeek(week)

	games := make([]models.NormalizedGame, 0, len(rawGames))
	for _, raw := range rawGames {
		if !window.Contains(raw.CommenceTime) {
			continue
		}

		if game := a.normalizer.NormalizeGame(raw, week); game != nil {
			games = append(games, *game)
		}
	}

	markAutopicks(games)

	return games
}

// AllWeeks normalizes every raw game into the week its kickoff falls
// in, keeping input order. Autopick is selected independently per
// distinct week number, never globally.
func (a *Aggregator) AllWeeks(rawGames []models.RawGame) []models.NormalizedGame {
	games := make([]models.NormalizedGame, 0, len(rawGames))
	for _, raw := range rawGames {
		week := a.anchor.WeekForInstant(raw.CommenceTime)

		if game := a.normalizer.NormalizeGame(raw, week); game != nil {
			games = append(games, *game)
		}
	}

	markAutopicks(games)

	return games
}

// markAutopicks flags, for each week present, the game with the most
// negative favorite spread, earliest kickoff breaking ties. Games
// without a favorite (pick'ems, spread gaps) never win. A stable sort
// on the explicit (spread, kickoff) key keeps the selection rule in
// one place.
func markAutopicks(games []models.NormalizedGame) {
	byWeek := make(map[int][]int)
	for i := range games {
		games[i].Autopick = false
		if games[i].FavoriteSpread == nil {
			continue
		}
		byWeek[games[i].WeekNumber] = append(byWeek[games[i].WeekNumber], i)
	}

	for _, candidates := range byWeek {
		sort.SliceStable(candidates, func(x, y int) bool {
			gx, gy := games[candidates[x]], games[candidates[y]]
			if *gx.FavoriteSpread != *gy.FavoriteSpread {
				return *gx.FavoriteSpread < *gy.FavoriteSpread
			}
			return gx.Kickoff.Before(gy.Kickoff)
		})

		games[candidates[0]].Autopick = true
	}
}
