package schedule

import (
	"fmt"
	"math"
	"time"
)

// anchorLayout is the civil timestamp format for SEASON_ANCHOR,
// interpreted in the season timezone.
const anchorLayout = "2006-01-02T15:04"

// windowSpan is the length of one week window: 6 days 23:58:59.
// Consecutive windows start exactly 7 civil days apart, so the gap
// between one window's end and the next start is never a live kickoff.
const windowSpan = 6*24*time.Hour + 23*time.Hour + 58*time.Minute + 59*time.Second

// SeasonAnchor fixes the first moment of week 1 in a named timezone.
// Week arithmetic is done in civil days in that timezone so window
// boundaries stay put across daylight-saving transitions; comparisons
// against kickoff instants are done on absolute times.
type SeasonAnchor struct {
	start time.Time
	loc   *time.Location
}

// WeekWindow is the [Start, End] interval of one season week,
// inclusive on both ends.
type WeekWindow struct {
	WeekNumber int       `json:"week_number"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// NewSeasonAnchor parses a civil timestamp like "2025-09-02T00:00"
// and a timezone name like "America/New_York".
func NewSeasonAnchor(civil, timezone string) (SeasonAnchor, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return SeasonAnchor{}, fmt.Errorf("loading season timezone: %w", err)
	}

	start, err := time.ParseInLocation(anchorLayout, civil, loc)
	if err != nil {
		return SeasonAnchor{}, fmt.Errorf("parsing season anchor %q: %w", civil, err)
	}

	return SeasonAnchor{start: start, loc: loc}, nil
}

// Location returns the anchor timezone, used for kickoff display.
func (a SeasonAnchor) Location() *time.Location {
	return a.loc
}

// WindowForWeek returns the window for any week number. Week 1 starts
// at the anchor; callers constrain the number to a valid season range.
func (a SeasonAnchor) WindowForWeek(week int) WeekWindow {
	start := a.start.AddDate(0, 0, 7*(week-1))

	return WeekWindow{
		WeekNumber: week,
		Start:      start.UTC(),
		End:        start.Add(windowSpan).UTC(),
	}
}

// WeekForInstant maps an instant to its week number by whole-day
// truncation in the anchor timezone: floor(days since anchor / 7) + 1.
// An instant exactly on a week boundary belongs to the new week. This
// is the exact inverse of WindowForWeek for instants inside a window.
func (a SeasonAnchor) WeekForInstant(t time.Time) int {
	days := a.civilDaysSinceAnchor(t)

	return floorDiv(days, 7) + 1
}

// Contains reports whether t falls inside the window, inclusive.
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// civilDaysSinceAnchor counts whole civil days between the anchor day
// and t's day, both truncated to midnight in the anchor timezone.
// Rounding absorbs the odd hour a DST transition adds or removes.
func (a SeasonAnchor) civilDaysSinceAnchor(t time.Time) int {
	diff := dayStart(t.In(a.loc)).Sub(dayStart(a.start))

	return int(math.Round(diff.Hours() / 24))
}

// dayStart truncates t to midnight of its civil day.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// floorDiv divides rounding toward negative infinity, so preseason
// instants land in week 0 and below instead of wrapping to week 1.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
