package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"marquee/config"
	"marquee/handlers"
	"marquee/internal/kvcache"
	"marquee/models"
	schedulesvc "marquee/services/schedule"
	"marquee/services/venues"
	"marquee/utils"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("[main] load config: %v", err)
	}

	if settings.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   settings.LogFile,
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     14, // days
		}))
	}

	tz, err := time.LoadLocation(settings.VenueTimezone)
	if err != nil {
		log.Fatalf("[main] load venue timezone %q: %v", settings.VenueTimezone, err)
	}

	cache := kvcache.New(settings.SweepInterval)
	defer cache.Close()

	sources := []venues.Source{
		venues.NewCalendarSource(venues.CalendarConfig{
			Theater:  venues.RoxieTheater,
			PageURL:  settings.RoxieCalendarURL,
			SiteURL:  settings.RoxieSiteURL,
			Timezone: tz,
		}),
		venues.NewEventsAPISource(eventsConfig(venues.BalboaTheater, settings.Balboa, tz)),
		venues.NewEventsAPISource(eventsConfig(venues.VogueTheater, settings.Vogue, tz)),
		venues.NewEventsAPISource(eventsConfig(venues.FourStarTheater, settings.FourStar, tz)),
	}

	service := schedulesvc.NewService(sources, cache, settings.ScheduleTTL, settings.TheaterTTL)
	handler := handlers.NewScheduleHandler(service)

	router := utils.NewRouter()
	router.HandleFunc("/api/showtimes", handler.GetShowtimes).Methods(http.MethodGet)
	router.HandleFunc("/api/theaters", handler.GetTheaters).Methods(http.MethodGet)

	log.Printf("[main] listening on %s with %d venue sources", settings.ListenAddr, len(sources))
	if err := http.ListenAndServe(settings.ListenAddr, router); err != nil {
		log.Fatalf("[main] server exited: %v", err)
	}
}

func eventsConfig(theater models.Theater, api config.VenueAPISettings, tz *time.Location) venues.EventsAPIConfig {
	return venues.EventsAPIConfig{
		Theater:      theater,
		BaseURL:      api.BaseURL,
		SiteURL:      api.SiteURL,
		CollectionID: api.CollectionID,
		Crumb:        api.Crumb,
		Timezone:     tz,
	}
}
