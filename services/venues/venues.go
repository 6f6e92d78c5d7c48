// Package venues contains the per-venue source adapters that turn each
// theater's raw listing data into the common MovieSchedule shape.
//
// Two adapter variants exist: an events-API poller for the Squarespace
// venues (Balboa, Vogue, 4-Star) and a calendar-page scraper for the
// Roxie. Both share the same Source contract and the same title-keying
// and time-resolution logic.
package venues

import (
	"context"

	"marquee/models"
)

// Source fetches raw data for one venue and produces that venue's
// schedules. FetchSchedules never fails: any network or parse error is
// logged and absorbed into an empty (or partial) result so one broken
// venue cannot block the rest of the aggregation.
type Source interface {
	Name() string
	Theater() models.Theater
	FetchSchedules(ctx context.Context) []models.MovieSchedule
}

// The four supported venues. Reference data only; never mutated.
var (
	RoxieTheater = models.Theater{
		ID:      "roxie-sf",
		Name:    "Roxie Theater",
		Address: "3117 16th St, San Francisco, CA 94103",
		Chain:   models.ChainRoxie,
		Location: models.Location{
			Latitude:  37.7649,
			Longitude: -122.4200,
		},
	}

	BalboaTheater = models.Theater{
		ID:      "balboa-sf",
		Name:    "Balboa Theater",
		Address: "3630 Balboa Street, San Francisco, CA 94121",
		Chain:   models.ChainBalboa,
		Location: models.Location{
			Latitude:  37.7759,
			Longitude: -122.4980,
		},
	}

	VogueTheater = models.Theater{
		ID:      "vogue-sf",
		Name:    "Vogue Theater",
		Address: "3290 Sacramento Street, San Francisco, CA 94115",
		Chain:   models.ChainVogue,
		Location: models.Location{
			Latitude:  37.7883,
			Longitude: -122.4525,
		},
	}

	FourStarTheater = models.Theater{
		ID:      "fourstar-sf",
		Name:    "4-Star Theater",
		Address: "2200 Clement Street, San Francisco, CA 94121",
		Chain:   models.ChainFourStar,
		Location: models.Location{
			Latitude:  37.7825,
			Longitude: -122.4814,
		},
	}
)
