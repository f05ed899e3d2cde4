package normalizer

import (
	"time"

	"github.com/supercweida/weida-picks/pkg/models"
	"github.com/supercweida/weida-picks/pkg/oddsmath"
)

// Market keys as The Odds API reports them.
const (
	MarketSpreads   = "spreads"
	MarketMoneyline = "h2h"
)

// kickoffDisplayLayout renders kickoffs like "Sun, Sep 7 1:00 PM EDT".
const kickoffDisplayLayout = "Mon, Jan 2 3:04 PM MST"

// Normalizer reduces raw games to single-bookmaker dashboard rows.
// Gaps in upstream data (missing book, missing market, odd outcome
// counts, zero prices) degrade to absent fields or a dropped row,
// never to an error — upstream payloads are lumpy and a partial row
// beats no table.
type Normalizer struct {
	bookKey string
	loc     *time.Location
}

// New creates a normalizer pinned to one bookmaker key. Kickoff
// display strings are rendered in loc.
func New(bookKey string, loc *time.Location) *Normalizer {
	return &Normalizer{
		bookKey: bookKey,
		loc:     loc,
	}
}

// BookKey returns the bookmaker key this normalizer selects.
func (n *Normalizer) BookKey() string {
	return n.bookKey
}

// NormalizeGame builds one row from a raw game for the configured
// bookmaker. Returns nil when the game has no entry for that book, or
// when it carries neither usable spread info nor a moneyline.
func (n *Normalizer) NormalizeGame(raw models.RawGame, week int) *models.NormalizedGame {
	book := findBookmaker(raw.Bookmakers, n.bookKey)
	if book == nil {
		return nil
	}

	game := &models.NormalizedGame{
		WeekNumber:     week,
		HomeTeam:       raw.HomeTeam,
		AwayTeam:       raw.AwayTeam,
		Kickoff:        raw.CommenceTime,
		KickoffDisplay: raw.CommenceTime.In(n.loc).Format(kickoffDisplayLayout),
	}

	hasSpreadMarket := false
	if spread := findMarket(book.Markets, MarketSpreads); spread != nil {
		favorite, underdog := NormalizeSpread(spread.Outcomes)
		hasSpreadMarket = len(spread.Outcomes) == 2

		// A pick'em keeps the row but leaves both sides absent.
		if favorite != nil && underdog != nil {
			game.FavoriteTeam = &favorite.Name
			game.FavoriteSpread = favorite.Point
			game.FavoritePrice = &favorite.Price
			game.UnderdogTeam = &underdog.Name
			game.UnderdogSpread = underdog.Point
			game.UnderdogPrice = &underdog.Price
		}
	}

	if moneyline := findMarket(book.Markets, MarketMoneyline); moneyline != nil {
		home, away := NormalizeMoneyline(moneyline.Outcomes, raw.HomeTeam)
		game.MoneylineHome = home
		game.MoneylineAway = away
		game.MoneylineHomePoints = pricePoints(home)
		game.MoneylineAwayPoints = pricePoints(away)
	}

	if !hasSpreadMarket && game.MoneylineHome == nil && game.MoneylineAway == nil {
		return nil
	}

	return game
}

// NormalizeSpread resolves a two-sided spread market into favorite
// and underdog by point value: strictly lesser (more negative) point
// is the favorite. Equal points is a pick'em and yields (nil, nil).
// Anything other than exactly two pointed outcomes yields (nil, nil).
func NormalizeSpread(outcomes []models.Outcome) (favorite, underdog *models.Outcome) {
	if len(outcomes) != 2 {
		return nil, nil
	}

	a, b := outcomes[0], outcomes[1]
	if a.Point == nil || b.Point == nil {
		return nil, nil
	}

	switch {
	case *a.Point < *b.Point:
		return &a, &b
	case *b.Point < *a.Point:
		return &b, &a
	default:
		// Pick'em
		return nil, nil
	}
}

// NormalizeMoneyline matches a two-sided moneyline market against the
// known home team name; the other outcome is away. An unmatched home
// name yields (nil, nil) silently.
func NormalizeMoneyline(outcomes []models.Outcome, homeTeam string) (home, away *int) {
	if len(outcomes) != 2 {
		return nil, nil
	}

	switch homeTeam {
	case outcomes[0].Name:
		return &outcomes[0].Price, &outcomes[1].Price
	case outcomes[1].Name:
		return &outcomes[1].Price, &outcomes[0].Price
	default:
		return nil, nil
	}
}

// pricePoints converts an optional moneyline price to the points
// proxy, treating an invalid price as absent.
func pricePoints(price *int) *float64 {
	if price == nil {
		return nil
	}

	points, err := oddsmath.MoneylineToPoints(*price)
	if err != nil {
		return nil
	}

	return &points
}

// findBookmaker selects the entry with an exactly matching key.
func findBookmaker(books []models.Bookmaker, key string) *models.Bookmaker {
	for i := range books {
		if books[i].Key == key {
			return &books[i]
		}
	}

	return nil
}

// findMarket selects the market with an exactly matching key.
func findMarket(markets []models.Market, key string) *models.Market {
	for i := range markets {
		if markets[i].Key == key {
			return &markets[i]
		}
	}

	return nil
}
