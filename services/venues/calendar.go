package venues

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"marquee/models"
	"marquee/utils/showclock"
)

// CalendarConfig parameterizes the calendar-page scrape venue.
type CalendarConfig struct {
	Theater  models.Theater
	PageURL  string // calendar page to scrape
	SiteURL  string // prepended to relative detail links
	Timezone *time.Location
}

// CalendarSource scrapes a venue's HTML calendar page. The markup is
// undocumented third-party structure; all DOM coupling is isolated here
// so a markup change only ever requires rewriting this adapter.
type CalendarSource struct {
	cfg            CalendarConfig
	client         *http.Client
	requestTimeout time.Duration
}

var monthIDPattern = regexp.MustCompile(`full-month-(\d{4})-(\d{2})`)

// NewCalendarSource returns an adapter for the scrape venue.
func NewCalendarSource(cfg CalendarConfig) *CalendarSource {
	return &CalendarSource{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestTimeout: 8 * time.Second,
	}
}

func (s *CalendarSource) Name() string { return string(s.cfg.Theater.Chain) }

func (s *CalendarSource) Theater() models.Theater { return s.cfg.Theater }

// FetchSchedules fetches and parses the calendar page. Any failure yields
// an empty list, logged but never propagated.
func (s *CalendarSource) FetchSchedules(ctx context.Context) []models.MovieSchedule {
	doc, err := s.fetchCalendar(ctx)
	if err != nil {
		log.Printf("[venues] %s: calendar fetch failed: %v", s.Name(), err)
		return nil
	}
	return s.parseCalendar(doc)
}

func (s *CalendarSource) fetchCalendar(ctx context.Context) (*goquery.Document, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.cfg.PageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calendar html: %w", err)
	}
	return doc, nil
}

// parseCalendar walks the calendar DOM: month containers carry a
// year-month token in their id, day cells carry the day number, and film
// entries carry title, showtime text and an optional detail link.
func (s *CalendarSource) parseCalendar(doc *goquery.Document) []models.MovieSchedule {
	b := newScheduleBuilder(s.cfg.Theater)

	doc.Find(`[id*="full-month-"]`).Each(func(_ int, month *goquery.Selection) {
		id, _ := month.Attr("id")
		m := monthIDPattern.FindStringSubmatch(id)
		if m == nil {
			return
		}
		year, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])

		month.Find(".calendar-day-item").Each(func(_ int, dayItem *goquery.Selection) {
			dayText := strings.TrimSpace(dayItem.Find(".calendar-day").First().Text())
			day, err := strconv.Atoi(dayText)
			if err != nil || day == 0 {
				// A cell with no recognizable day number is skipped, not
				// the whole page.
				return
			}

			date := time.Date(year, time.Month(monthNum), day, 0, 0, 0, 0, s.cfg.Timezone)

			dayItem.Find(".film").Each(func(_ int, film *goquery.Selection) {
				s.collectFilm(b, film, date)
			})
		})
	})

	return b.schedules()
}

func (s *CalendarSource) collectFilm(b *scheduleBuilder, film *goquery.Selection, date time.Time) {
	title := strings.TrimSpace(film.Find(".film-title").First().Text())
	showtimeEl := film.Find(".film-showtime").First()
	timeText := strings.TrimSpace(showtimeEl.Text())
	if title == "" || timeText == "" {
		return
	}

	key := b.ensureMovie(title, "")

	start, ok := showclock.Resolve(date, timeText, s.cfg.Timezone)
	if !ok {
		// Unparseable time text defaults to a 7:00 PM show venue-local.
		start = time.Date(date.Year(), date.Month(), date.Day(), 19, 0, 0, 0, s.cfg.Timezone).UTC()
	}

	ticketURL := ""
	if href, exists := film.Find(`a[href*="/film/"]`).First().Attr("href"); exists {
		ticketURL = href
		if !strings.HasPrefix(href, "http") {
			ticketURL = s.cfg.SiteURL + href
		}
	}

	id, _ := showtimeEl.Attr("id")

	b.addShowtime(key, models.Showtime{
		ID:        id, // builder derives an ordinal id when empty
		MovieID:   key,
		TheaterID: s.cfg.Theater.ID,
		StartTime: start,
		EndTime:   start.Add(models.DefaultDuration * time.Minute),
		TicketURL: ticketURL,
		Format:    "Standard",
	})
}

var _ Source = (*CalendarSource)(nil)
