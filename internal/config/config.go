package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port string

	// Odds provider
	OddsAPIKey     string
	OddsAPIBaseURL string
	SportKey       string
	Bookmaker      string
	Regions        []string
	Markets        []string
	FetchTimeout   time.Duration

	// Season windowing
	SeasonAnchor   string
	SeasonTimezone string
	MaxWeeks       int

	CORSOrigins []string
}

// Load loads configuration from environment variables. The API key is
// the one value with no default — it is a secret and never lives in
// code or version control.
func Load() Config {
	return Config{
		Port: getEnv("PORT", ":8080"),

		OddsAPIKey:     getEnv("ODDS_API_KEY", ""),
		OddsAPIBaseURL: getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		SportKey:       getEnv("SPORT_KEY", "americanfootball_nfl"),
		Bookmaker:      getEnv("BOOKMAKER", "fanduel"),
		Regions:        getEnvList("ODDS_REGIONS", "us"),
		Markets:        getEnvList("ODDS_MARKETS", "spreads,h2h"),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 10*time.Second),

		SeasonAnchor:   getEnv("SEASON_ANCHOR", "2025-09-02T00:00"),
		SeasonTimezone: getEnv("SEASON_TIMEZONE", "America/New_York"),
		MaxWeeks:       getEnvInt("MAX_WEEKS", 18),

		CORSOrigins: getEnvList("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),
	}
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	if c.OddsAPIKey == "" {
		return fmt.Errorf("ODDS_API_KEY is required")
	}
	if c.MaxWeeks < 1 {
		return fmt.Errorf("MAX_WEEKS must be at least 1, got %d", c.MaxWeeks)
	}
	if len(c.Markets) == 0 {
		return fmt.Errorf("ODDS_MARKETS must name at least one market")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration retrieves a duration environment variable like "10s"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma-separated environment variable
func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
