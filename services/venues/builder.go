package venues

import (
	"fmt"
	"sort"

	"marquee/models"
	"marquee/utils/titlekey"
)

// scheduleBuilder merges same-key movies within a single adapter run into
// one Movie plus an appended showtime list. The first event seen for a
// key supplies the display metadata; later events only add showtimes.
type scheduleBuilder struct {
	theater models.Theater
	movies  map[string]*models.Movie
	shows   map[string][]models.Showtime
}

func newScheduleBuilder(theater models.Theater) *scheduleBuilder {
	return &scheduleBuilder{
		theater: theater,
		movies:  make(map[string]*models.Movie),
		shows:   make(map[string][]models.Showtime),
	}
}

// ensureMovie returns the dedup key for title, creating the Movie with
// venue defaults on first sight. posterURL may be empty.
func (b *scheduleBuilder) ensureMovie(title, posterURL string) string {
	key := titlekey.Key(title)
	if _, ok := b.movies[key]; !ok {
		b.movies[key] = &models.Movie{
			ID:          key,
			Title:       title,
			Genre:       []string{"Independent"},
			Rating:      "NR",
			Duration:    models.DefaultDuration,
			Description: fmt.Sprintf("Playing at %s", b.theater.Name),
			PosterURL:   posterURL,
		}
	}
	return key
}

// addShowtime appends a showtime under key. When id is empty a
// per-movie ordinal id is derived.
func (b *scheduleBuilder) addShowtime(key string, st models.Showtime) {
	if st.ID == "" {
		st.ID = fmt.Sprintf("%s-%d", key, len(b.shows[key]))
	}
	b.shows[key] = append(b.shows[key], st)
}

// schedules materializes the merged MovieSchedule list, ordered by movie
// key so the output does not depend on map iteration or insertion order.
func (b *scheduleBuilder) schedules() []models.MovieSchedule {
	keys := make([]string, 0, len(b.movies))
	for k := range b.movies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.MovieSchedule, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.MovieSchedule{
			Theater:   b.theater,
			Movie:     *b.movies[k],
			Showtimes: b.shows[k],
		})
	}
	return out
}
