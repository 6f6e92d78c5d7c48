package venues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const calendarFixture = `
<html><body>
<div id="full-month-2025-03">
  <div class="calendar-day-item">
    <div class="calendar-day">15</div>
    <div class="film">
      <div class="film-title">Eraserhead</div>
      <div class="film-showtime" id="show-eraserhead-1915">7:15 PM</div>
      <a href="/film/eraserhead">details</a>
    </div>
    <div class="film">
      <div class="film-title">Eraserhead</div>
      <div class="film-showtime">9:30 PM</div>
      <a href="https://tickets.example.com/eraserhead">details</a>
    </div>
  </div>
  <div class="calendar-day-item">
    <div class="calendar-day">16</div>
    <div class="film">
      <div class="film-title">Wings of Desire</div>
      <div class="film-showtime">Matinee</div>
      <a href="/film/wings-of-desire">details</a>
    </div>
    <div class="film">
      <div class="film-title"></div>
      <div class="film-showtime">8:00 PM</div>
    </div>
  </div>
  <div class="calendar-day-item">
    <div class="calendar-day"></div>
    <div class="film">
      <div class="film-title">Ghost Entry</div>
      <div class="film-showtime">6:00 PM</div>
    </div>
  </div>
</div>
<div id="full-month-2025-04">
  <div class="calendar-day-item">
    <div class="calendar-day">1</div>
    <div class="film">
      <div class="film-title">Eraserhead</div>
      <div class="film-showtime">5:00 PM</div>
      <a href="/film/eraserhead">details</a>
    </div>
  </div>
</div>
<div id="not-a-month">
  <div class="calendar-day-item">
    <div class="calendar-day">9</div>
    <div class="film">
      <div class="film-title">Should Not Appear</div>
      <div class="film-showtime">1:00 PM</div>
    </div>
  </div>
</div>
</body></html>`

func newTestCalendarSource(t *testing.T, pageURL string) *CalendarSource {
	t.Helper()
	return NewCalendarSource(CalendarConfig{
		Theater:  RoxieTheater,
		PageURL:  pageURL,
		SiteURL:  "https://roxie.com",
		Timezone: sfZone(t),
	})
}

func TestCalendarParse(t *testing.T) {
	loc := sfZone(t)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(calendarFixture))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}

	s := newTestCalendarSource(t, "unused")
	schedules := s.parseCalendar(doc)

	byKey := make(map[string]int)
	for i, sched := range schedules {
		byKey[sched.Movie.ID] = i
	}

	if _, ok := byKey["ghost-entry"]; ok {
		t.Error("day cell without a day number must be skipped")
	}
	if _, ok := byKey["should-not-appear"]; ok {
		t.Error("containers without a month token must be skipped")
	}

	idx, ok := byKey["eraserhead"]
	if !ok {
		t.Fatal("missing eraserhead schedule")
	}
	era := schedules[idx]
	// Two March shows plus one April show merge under one movie.
	if len(era.Showtimes) != 3 {
		t.Fatalf("expected 3 eraserhead showtimes, got %d", len(era.Showtimes))
	}

	first := era.Showtimes[0]
	if first.ID != "show-eraserhead-1915" {
		t.Errorf("showtime id should come from the markup, got %q", first.ID)
	}
	if local := first.StartTime.In(loc); local.Hour() != 19 || local.Minute() != 15 || local.Day() != 15 {
		t.Errorf("first showtime = %v, want Mar 15 19:15 local", local)
	}
	if first.TicketURL != "https://roxie.com/film/eraserhead" {
		t.Errorf("relative detail link not prefixed: %q", first.TicketURL)
	}

	second := era.Showtimes[1]
	if second.ID != "eraserhead-1" {
		t.Errorf("markup without an id should get an ordinal id, got %q", second.ID)
	}
	if second.TicketURL != "" {
		t.Errorf("non-film link should be ignored, got %q", second.TicketURL)
	}

	third := era.Showtimes[2]
	if local := third.StartTime.In(loc); local.Month() != time.April || local.Day() != 1 || local.Hour() != 17 {
		t.Errorf("april showtime = %v, want Apr 1 17:00 local", local)
	}

	idx, ok = byKey["wings-of-desire"]
	if !ok {
		t.Fatal("missing wings-of-desire schedule")
	}
	wings := schedules[idx]
	if len(wings.Showtimes) != 1 {
		t.Fatalf("expected 1 wings showtime, got %d", len(wings.Showtimes))
	}
	if local := wings.Showtimes[0].StartTime.In(loc); local.Hour() != 19 || local.Minute() != 0 {
		t.Errorf("unparseable time should default to 7:00 PM local, got %v", local)
	}

	for _, sched := range schedules {
		for _, st := range sched.Showtimes {
			if got := st.EndTime.Sub(st.StartTime); got != 120*time.Minute {
				t.Errorf("showtime %s duration = %v, want 120m", st.ID, got)
			}
		}
	}
}

func TestCalendarFetchFailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestCalendarSource(t, srv.URL)
	if schedules := s.FetchSchedules(context.Background()); len(schedules) != 0 {
		t.Errorf("fetch failure should yield empty list, got %d", len(schedules))
	}
}

func TestCalendarFetchParsesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(calendarFixture))
	}))
	defer srv.Close()

	s := newTestCalendarSource(t, srv.URL)
	schedules := s.FetchSchedules(context.Background())
	if len(schedules) != 2 {
		t.Fatalf("expected 2 schedules (eraserhead, wings-of-desire), got %d", len(schedules))
	}
}
