// Package config holds process configuration. Venue constants and access
// tokens are explicit settings injected into adapter construction, not
// hidden statics, so tests can substitute fixtures without network access.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// VenueAPISettings configures one events-API venue.
type VenueAPISettings struct {
	BaseURL      string
	SiteURL      string
	CollectionID string
	// Crumb is the semi-static access token the endpoint expects. It may
	// need a refresh when the venue rotates it; override via env.
	Crumb string
}

// Settings is the full process configuration.
type Settings struct {
	ListenAddr string
	LogFile    string // empty means stderr only

	ScheduleTTL   time.Duration
	TheaterTTL    time.Duration
	SweepInterval time.Duration

	// VenueTimezone is the wall-clock zone all four venues share.
	VenueTimezone string

	RoxieCalendarURL string
	RoxieSiteURL     string

	Balboa   VenueAPISettings
	Vogue    VenueAPISettings
	FourStar VenueAPISettings
}

// Load reads settings from the environment, honoring a .env file when
// one is present. Every value has a working default.
func Load() (*Settings, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	s := &Settings{
		ListenAddr: getEnv("MARQUEE_ADDR", ":8080"),
		LogFile:    os.Getenv("MARQUEE_LOG_FILE"),

		ScheduleTTL:   getDuration("MARQUEE_SCHEDULE_TTL_SECONDS", 1800),
		TheaterTTL:    getDuration("MARQUEE_THEATER_TTL_SECONDS", 3600),
		SweepInterval: getDuration("MARQUEE_CACHE_SWEEP_SECONDS", 300),

		VenueTimezone: getEnv("MARQUEE_VENUE_TZ", "America/Los_Angeles"),

		RoxieCalendarURL: getEnv("MARQUEE_ROXIE_CALENDAR_URL", "https://roxie.com/calendar/"),
		RoxieSiteURL:     getEnv("MARQUEE_ROXIE_SITE_URL", "https://roxie.com"),

		Balboa: VenueAPISettings{
			BaseURL:      getEnv("MARQUEE_BALBOA_API_URL", "https://www.balboamovies.com/api/open/GetItemsByMonth"),
			SiteURL:      getEnv("MARQUEE_BALBOA_SITE_URL", "https://www.balboamovies.com"),
			CollectionID: getEnv("MARQUEE_BALBOA_COLLECTION_ID", "616e03c4b792dc0e9cf140e7"),
			Crumb:        getEnv("MARQUEE_BALBOA_CRUMB", "BQdoFSYA5QRmOTI1ODQ2ZjA0ODlhZmRkYmVjMjg3NjY0MjQ4M2Iz"),
		},
		Vogue: VenueAPISettings{
			BaseURL:      getEnv("MARQUEE_VOGUE_API_URL", "https://www.voguemovies.com/api/open/GetItemsByMonth"),
			SiteURL:      getEnv("MARQUEE_VOGUE_SITE_URL", "https://www.voguemovies.com"),
			CollectionID: getEnv("MARQUEE_VOGUE_COLLECTION_ID", "616e04d8e4d9fb14d6cd620d"),
			Crumb:        getEnv("MARQUEE_VOGUE_CRUMB", "BSveQX0qkx9uN2Y2YmIxNTE4NGFlZDY2MDkwMzVlMjA0NzZlNGZh"),
		},
		FourStar: VenueAPISettings{
			BaseURL:      getEnv("MARQUEE_FOURSTAR_API_URL", "https://www.4-star-movies.com/api/open/GetItemsByMonth"),
			SiteURL:      getEnv("MARQUEE_FOURSTAR_SITE_URL", "https://www.4-star-movies.com"),
			CollectionID: getEnv("MARQUEE_FOURSTAR_COLLECTION_ID", "616e05fa520d8e7b1cd0ae3d"),
			Crumb:        getEnv("MARQUEE_FOURSTAR_CRUMB", "BdvTODxNXtj8ZWFhY2Q5ZGU2OThiMDQ2ZTM0ZWZhODk5MGEzZGI0"),
		},
	}

	if s.ScheduleTTL <= 0 || s.TheaterTTL <= 0 {
		return nil, fmt.Errorf("cache TTLs must be positive")
	}

	return s, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
