package aggregator_test

import (
	"testing"
	"time"

	"github.com/supercweida/weida-picks/internal/aggregator"
	"github.com/supercweida/weida-picks/internal/normalizer"
	"github.com/supercweida/weida-picks/internal/schedule"
	"github.com/supercweida/weida-picks/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func newAggregator(t *testing.T) *aggregator.Aggregator {
	t.Helper()

	anchor, err := schedule.NewSeasonAnchor("2025-09-02T00:00", "America/New_York")
	if err != nil {
		t.Fatalf("building anchor: %v", err)
	}

	return aggregator.New(anchor, normalizer.New("fanduel", anchor.Location()))
}

// spreadGame builds a raw game with a FanDuel spread market where the
// home team is favored by favoriteSpread (negative = favored).
func spreadGame(home, away string, kickoff time.Time, favoriteSpread float64) models.RawGame {
	return models.RawGame{
		ID:           "evt-" + home,
		SportKey:     "americanfootball_nfl",
		CommenceTime: kickoff,
		HomeTeam:     home,
		AwayTeam:     away,
		Bookmakers: []models.Bookmaker{{
			Key:   "fanduel",
			Title: "FanDuel",
			Markets: []models.Market{{
				Key: "spreads",
				Outcomes: []models.Outcome{
					{Name: home, Point: floatPtr(favoriteSpread), Price: -110},
					{Name: away, Point: floatPtr(-favoriteSpread), Price: -110},
				},
			}},
		}},
	}
}

func autopickTeams(games []models.NormalizedGame) []string {
	var picked []string
	for _, g := range games {
		if g.Autopick {
			picked = append(picked, g.HomeTeam)
		}
	}
	return picked
}

func TestWeek_AutopickLargestFavorite(t *testing.T) {
	agg := newAggregator(t)

	sunday1pm := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	sunday425pm := time.Date(2025, 9, 7, 20, 25, 0, 0, time.UTC)

	raw := []models.RawGame{
		spreadGame("Bengals", "Browns", sunday425pm, -3.5),
		spreadGame("Eagles", "Cowboys", sunday1pm, -7.0),
	}

	games := agg.Week(raw, 1)
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	picked := autopickTeams(games)
	if len(picked) != 1 || picked[0] != "Eagles" {
		t.Errorf("autopick = %v, want [Eagles]", picked)
	}

	// Input order preserved
	if games[0].HomeTeam != "Bengals" || games[1].HomeTeam != "Eagles" {
		t.Errorf("output order changed: %s, %s", games[0].HomeTeam, games[1].HomeTeam)
	}
}

func TestWeek_AutopickTieBrokenByEarliestKickoff(t *testing.T) {
	agg := newAggregator(t)

	early := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	late := time.Date(2025, 9, 8, 0, 20, 0, 0, time.UTC)

	raw := []models.RawGame{
		spreadGame("Ravens", "Steelers", late, -6.5),
		spreadGame("Chiefs", "Raiders", early, -6.5),
	}

	games := agg.Week(raw, 1)
	picked := autopickTeams(games)
	if len(picked) != 1 || picked[0] != "Chiefs" {
		t.Errorf("autopick = %v, want [Chiefs] (earlier kickoff)", picked)
	}
}

func TestWeek_FiltersToWindow(t *testing.T) {
	agg := newAggregator(t)

	week1 := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	week2 := time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC)

	raw := []models.RawGame{
		spreadGame("Eagles", "Cowboys", week1, -7.0),
		spreadGame("Bills", "Jets", week2, -4.5),
	}

	games := agg.Week(raw, 1)
	if len(games) != 1 {
		t.Fatalf("expected 1 game in week 1, got %d", len(games))
	}
	if games[0].HomeTeam != "Eagles" {
		t.Errorf("wrong game survived the filter: %s", games[0].HomeTeam)
	}
}

func TestWeek_WindowEdgesInclusive(t *testing.T) {
	agg := newAggregator(t)

	// Week 1: Tue Sep 2 00:00:00 EDT through Mon Sep 8 23:58:59 EDT
	startEdge := time.Date(2025, 9, 2, 4, 0, 0, 0, time.UTC)
	endEdge := time.Date(2025, 9, 9, 3, 58, 59, 0, time.UTC)

	raw := []models.RawGame{
		spreadGame("Eagles", "Cowboys", startEdge, -7.0),
		spreadGame("Bills", "Jets", endEdge, -4.5),
	}

	if games := agg.Week(raw, 1); len(games) != 2 {
		t.Errorf("expected both edge games included, got %d", len(games))
	}
}

func TestWeek_PickEmAppearsButNeverAutopicked(t *testing.T) {
	agg := newAggregator(t)
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	pickEm := spreadGame("Jets", "Dolphins", kickoff, -3.0)
	// Both sides at -3.0
	pickEm.Bookmakers[0].Markets[0].Outcomes[1].Point = floatPtr(-3.0)

	raw := []models.RawGame{
		pickEm,
		spreadGame("Eagles", "Cowboys", kickoff.Add(time.Hour), -1.5),
	}

	games := agg.Week(raw, 1)
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	picked := autopickTeams(games)
	if len(picked) != 1 || picked[0] != "Eagles" {
		t.Errorf("autopick = %v, want [Eagles]", picked)
	}
}

func TestWeek_NoFavoritesNoAutopick(t *testing.T) {
	agg := newAggregator(t)
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	pickEm := spreadGame("Jets", "Dolphins", kickoff, -3.0)
	pickEm.Bookmakers[0].Markets[0].Outcomes[1].Point = floatPtr(-3.0)

	games := agg.Week([]models.RawGame{pickEm}, 1)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if picked := autopickTeams(games); len(picked) != 0 {
		t.Errorf("expected no autopick, got %v", picked)
	}
}

func TestWeek_MissingBookmakerDropped(t *testing.T) {
	agg := newAggregator(t)
	kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	noBook := spreadGame("Eagles", "Cowboys", kickoff, -7.0)
	noBook.Bookmakers[0].Key = "draftkings"

	if games := agg.Week([]models.RawGame{noBook}, 1); len(games) != 0 {
		t.Errorf("expected unmatched bookmaker to drop the game, got %d rows", len(games))
	}
}

func TestWeek_EmptyInput(t *testing.T) {
	agg := newAggregator(t)

	if games := agg.Week(nil, 1); len(games) != 0 {
		t.Errorf("expected empty output, got %d rows", len(games))
	}
}

func TestAllWeeks_OneAutopickPerWeek(t *testing.T) {
	agg := newAggregator(t)

	week1a := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)
	week1b := time.Date(2025, 9, 7, 20, 25, 0, 0, time.UTC)
	week2a := time.Date(2025, 9, 14, 17, 0, 0, 0, time.UTC)
	week2b := time.Date(2025, 9, 14, 20, 25, 0, 0, time.UTC)

	raw := []models.RawGame{
		spreadGame("Eagles", "Cowboys", week1a, -7.0),
		spreadGame("Bengals", "Browns", week1b, -3.5),
		spreadGame("Bills", "Jets", week2a, -4.5),
		// Biggest favorite overall sits in week 2
		spreadGame("Chiefs", "Raiders", week2b, -10.5),
	}

	games := agg.AllWeeks(raw)
	if len(games) != 4 {
		t.Fatalf("expected 4 games, got %d", len(games))
	}

	picksByWeek := make(map[int][]string)
	for _, g := range games {
		if g.Autopick {
			picksByWeek[g.WeekNumber] = append(picksByWeek[g.WeekNumber], g.HomeTeam)
		}
	}

	if got := picksByWeek[1]; len(got) != 1 || got[0] != "Eagles" {
		t.Errorf("week 1 autopick = %v, want [Eagles]", got)
	}
	if got := picksByWeek[2]; len(got) != 1 || got[0] != "Chiefs" {
		t.Errorf("week 2 autopick = %v, want [Chiefs]", got)
	}
}

func TestCurrentWeek(t *testing.T) {
	agg := newAggregator(t)

	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	if got := agg.CurrentWeek(now); got != 2 {
		t.Errorf("CurrentWeek = %d, want 2", got)
	}
}
