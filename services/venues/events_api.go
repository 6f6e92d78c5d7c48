package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"marquee/models"
	"marquee/utils/showclock"
)

// EventsAPIConfig parameterizes one events-API venue. The three
// Squarespace venues differ only in these constants.
type EventsAPIConfig struct {
	Theater      models.Theater
	BaseURL      string // GetItemsByMonth endpoint
	SiteURL      string // venue site root, prepended to relative URLs
	CollectionID string
	Crumb        string // semi-static access token
	Timezone     *time.Location
}

// EventsAPISource polls a venue's "events by month" JSON endpoint for the
// current month plus the following two. Each event carries a free-text
// title that may encode several showtimes ("Film @ 2PM & 4:30PM & 7PM").
type EventsAPISource struct {
	cfg            EventsAPIConfig
	client         *http.Client
	requestTimeout time.Duration
	now            func() time.Time
}

// monthsAhead is the fetch window: the current month and the next two.
const monthsAhead = 3

// venueEvent is one entry of the GetItemsByMonth response.
type venueEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate int64  `json:"startDate"` // epoch milliseconds
	EndDate   int64  `json:"endDate"`
	AssetURL  string `json:"assetUrl,omitempty"`
	FullURL   string `json:"fullUrl"`
	Location  *struct {
		AddressTitle string `json:"addressTitle,omitempty"`
		AddressLine1 string `json:"addressLine1,omitempty"`
		AddressLine2 string `json:"addressLine2,omitempty"`
	} `json:"location,omitempty"`
}

// timeFragmentPattern accepts fragments like "4:30PM" and "2PM", with a
// tolerated stray leading underscore the upstream CMS sometimes emits.
var timeFragmentPattern = regexp.MustCompile(`(?i)\d+:\d+\s*(AM|PM)|^_?\d+\s*(AM|PM)`)

// NewEventsAPISource returns an adapter for one events-API venue.
func NewEventsAPISource(cfg EventsAPIConfig) *EventsAPISource {
	return &EventsAPISource{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestTimeout: 8 * time.Second,
		now:            time.Now,
	}
}

func (s *EventsAPISource) Name() string { return string(s.cfg.Theater.Chain) }

func (s *EventsAPISource) Theater() models.Theater { return s.cfg.Theater }

// FetchSchedules issues the per-month fetches concurrently, keeps
// whatever months succeeded, and normalizes the surviving events. It
// never returns an error to the caller.
func (s *EventsAPISource) FetchSchedules(ctx context.Context) []models.MovieSchedule {
	start := s.now().In(s.cfg.Timezone)
	base := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, s.cfg.Timezone)

	results := make([][]venueEvent, monthsAhead)
	var wg conc.WaitGroup
	for i := 0; i < monthsAhead; i++ {
		i := i
		month := base.AddDate(0, i, 0).Format("01-2006")
		wg.Go(func() {
			events, err := s.fetchMonth(ctx, month)
			if err != nil {
				// A failed month is dropped, not retried; the other
				// months still contribute.
				log.Printf("[venues] %s: month %s fetch failed: %v", s.Name(), month, err)
				return
			}
			results[i] = events
		})
	}
	wg.Wait()

	var events []venueEvent
	for _, monthEvents := range results {
		events = append(events, monthEvents...)
	}

	return s.buildSchedules(events)
}

func (s *EventsAPISource) fetchMonth(ctx context.Context, month string) ([]venueEvent, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s?month=%s&collectionId=%s&crumb=%s",
		s.cfg.BaseURL, month, s.cfg.CollectionID, s.cfg.Crumb)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	// The endpoint only answers requests that look like the calendar
	// page's own XHR.
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", s.cfg.SiteURL+"/calendar")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("events api returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var events []venueEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	return events, nil
}

func (s *EventsAPISource) buildSchedules(events []venueEvent) []models.MovieSchedule {
	b := newScheduleBuilder(s.cfg.Theater)

	for _, event := range events {
		title, fragments := splitEventTitle(event.Title)
		if title == "" {
			continue
		}

		key := b.ensureMovie(title, event.AssetURL)
		eventDate := time.UnixMilli(event.StartDate)

		for _, fragment := range fragments {
			start, ok := showclock.Resolve(eventDate, fragment, s.cfg.Timezone)
			if !ok {
				// That one showtime is omitted; the rest of the event's
				// fragments still populate.
				continue
			}
			b.addShowtime(key, s.showtime(key, event, start))
		}

		if len(fragments) == 0 {
			// No times encoded in the title: the event's own timestamp
			// is the single showtime.
			b.addShowtime(key, s.showtime(key, event, eventDate.UTC()))
		}
	}

	return b.schedules()
}

func (s *EventsAPISource) showtime(key string, event venueEvent, start time.Time) models.Showtime {
	return models.Showtime{
		ID:        fmt.Sprintf("%s-%s-%d", key, event.ID, start.UnixMilli()),
		MovieID:   key,
		TheaterID: s.cfg.Theater.ID,
		StartTime: start,
		EndTime:   start.Add(models.DefaultDuration * time.Minute),
		TicketURL: s.cfg.SiteURL + event.FullURL,
		Format:    "Standard",
	}
}

// splitEventTitle separates "Film Name @ 2PM & 4:30PM & 7PM" into the
// film name and its recognized time fragments. A title without the @
// separator is all name and no fragments.
func splitEventTitle(title string) (string, []string) {
	parts := strings.SplitN(title, "@", 2)
	name := strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return name, nil
	}

	var fragments []string
	for _, piece := range strings.Split(parts[1], "&") {
		piece = strings.TrimSpace(piece)
		if timeFragmentPattern.MatchString(piece) {
			fragments = append(fragments, piece)
		}
	}
	return name, fragments
}

var _ Source = (*EventsAPISource)(nil)
