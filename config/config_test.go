package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if s.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", s.ListenAddr)
	}
	if s.ScheduleTTL != 30*time.Minute {
		t.Errorf("schedule ttl = %v", s.ScheduleTTL)
	}
	if s.TheaterTTL != time.Hour {
		t.Errorf("theater ttl = %v", s.TheaterTTL)
	}
	if s.VenueTimezone != "America/Los_Angeles" {
		t.Errorf("venue tz = %q", s.VenueTimezone)
	}
	if s.Balboa.CollectionID == "" || s.Vogue.Crumb == "" || s.FourStar.BaseURL == "" {
		t.Error("venue defaults missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MARQUEE_ADDR", ":9999")
	t.Setenv("MARQUEE_SCHEDULE_TTL_SECONDS", "60")
	t.Setenv("MARQUEE_BALBOA_CRUMB", "rotated-token")

	s, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if s.ListenAddr != ":9999" {
		t.Errorf("listen addr override ignored: %q", s.ListenAddr)
	}
	if s.ScheduleTTL != time.Minute {
		t.Errorf("ttl override ignored: %v", s.ScheduleTTL)
	}
	if s.Balboa.Crumb != "rotated-token" {
		t.Errorf("crumb override ignored: %q", s.Balboa.Crumb)
	}
}
