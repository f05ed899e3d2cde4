package models

import "time"

// RawGame is one event as returned by The Odds API v4 odds endpoint.
// It is held only for the lifetime of one fetch cycle; aggregation
// re-derives everything from it on demand.
type RawGame struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's quote set for a game.
type Bookmaker struct {
	Key        string    `json:"key"`
	Title      string    `json:"title"`
	LastUpdate time.Time `json:"last_update"`
	Markets    []Market  `json:"markets"`
}

// Market holds the two-sided outcomes for one market type.
// Moneylines use the key "h2h", spreads use "spreads".
type Market struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is one side of a market. Point is only present for spreads.
type Outcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"` // American odds
	Point *float64 `json:"point,omitempty"`
}

// NormalizedGame is one dashboard row: a game reduced to a single
// bookmaker's spread and moneyline, with favorite/underdog resolved.
// Pointer fields distinguish "absent" from a genuine zero — a pick'em
// game carries nil favorite fields, not zeroes.
type NormalizedGame struct {
	WeekNumber int    `json:"week_number"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`

	FavoriteTeam   *string  `json:"favorite_team"`
	FavoriteSpread *float64 `json:"favorite_spread"`
	FavoritePrice  *int     `json:"favorite_price"`
	UnderdogTeam   *string  `json:"underdog_team"`
	UnderdogSpread *float64 `json:"underdog_spread"`
	UnderdogPrice  *int     `json:"underdog_price"`

	MoneylineHome       *int     `json:"moneyline_home"`
	MoneylineAway       *int     `json:"moneyline_away"`
	MoneylineHomePoints *float64 `json:"moneyline_home_points"`
	MoneylineAwayPoints *float64 `json:"moneyline_away_points"`

	Kickoff        time.Time `json:"kickoff"`
	KickoffDisplay string    `json:"kickoff_display"`
	Autopick       bool      `json:"autopick"`
}

// RateLimits carries The Odds API quota headers from a fetch.
type RateLimits struct {
	RequestsRemaining int `json:"requests_remaining"`
	RequestsUsed      int `json:"requests_used"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
