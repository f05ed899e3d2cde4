package theoddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/supercweida/weida-picks/pkg/models"
)

const DefaultBaseURL = "https://api.the-odds-api.com/v4"

// Client handles The Odds API v4 requests. One call per explicit
// user refresh; no retries — a failed fetch surfaces to the caller
// and the previous snapshot stays in place.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// Options configures a fetch.
type Options struct {
	Sport      string   // e.g. americanfootball_nfl
	Regions    []string // e.g. ["us"]
	Markets    []string // e.g. ["spreads", "h2h"]
	OddsFormat string   // "american"
}

// New creates a client. The timeout bounds the whole fetch; expiry is
// reported as a fetch failure like any other.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: "weida-picks/1.0",
	}
}

// FetchOdds fetches the full upcoming odds board for a sport. A non-200
// status, network failure, or empty/undecodable body is an error; an
// empty JSON array is a valid, empty board.
func (c *Client) FetchOdds(ctx context.Context, opts Options) ([]models.RawGame, models.RateLimits, error) {
	endpoint := fmt.Sprintf("%s/sports/%s/odds", c.baseURL, opts.Sport)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", strings.Join(opts.Regions, ","))
	params.Set("markets", strings.Join(opts.Markets, ","))
	params.Set("oddsFormat", opts.OddsFormat)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, models.RateLimits{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.RateLimits{}, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	limits := parseRateLimits(resp.Header)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, limits, fmt.Errorf("odds API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, limits, fmt.Errorf("reading response: %w", err)
	}
	if len(body) == 0 {
		return nil, limits, fmt.Errorf("odds API returned an empty body")
	}

	var games []models.RawGame
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, limits, fmt.Errorf("decoding response: %w", err)
	}

	return games, limits, nil
}

// parseRateLimits reads the quota headers The Odds API attaches to
// every response. Missing or malformed headers read as zero.
func parseRateLimits(h http.Header) models.RateLimits {
	remaining, _ := strconv.Atoi(h.Get("x-requests-remaining"))
	used, _ := strconv.Atoi(h.Get("x-requests-used"))

	return models.RateLimits{
		RequestsRemaining: remaining,
		RequestsUsed:      used,
	}
}
