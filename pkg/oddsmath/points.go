package oddsmath

import (
	"errors"
	"math"
)

// ErrZeroPrice is returned when a moneyline price of 0 is converted.
// Zero is not a valid American price and would otherwise divide out
// to garbage silently.
var ErrZeroPrice = errors.New("invalid moneyline price: cannot be 0")

// MoneylineToPoints converts an American moneyline price to an
// implied-points proxy used for eyeballing how lopsided a game is.
// +150 → 15.00, -150 → 6.67, ±100 → 10.00.
//
// This is a display heuristic, not an implied probability — do not
// use it for any probability or EV math.
func MoneylineToPoints(price int) (float64, error) {
	if price == 0 {
		return 0, ErrZeroPrice
	}

	if price > 0 {
		// Underdog price: scale down by 10
		return roundTo2(float64(price) / 10.0), nil
	}

	// Favorite price: 1000 / abs(price)
	return roundTo2(1000.0 / float64(-price)), nil
}

// roundTo2 rounds to 2 decimal places
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
