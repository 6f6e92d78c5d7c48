package models

import "time"

// TheaterChain identifies one of the supported venues.
type TheaterChain string

const (
	ChainRoxie    TheaterChain = "ROXIE"
	ChainBalboa   TheaterChain = "BALBOA"
	ChainVogue    TheaterChain = "VOGUE"
	ChainFourStar TheaterChain = "FOURSTAR"
)

// ParseTheaterChain validates a chain tag from a query parameter.
func ParseTheaterChain(s string) (TheaterChain, bool) {
	switch TheaterChain(s) {
	case ChainRoxie, ChainBalboa, ChainVogue, ChainFourStar:
		return TheaterChain(s), true
	}
	return "", false
}

// Location is a geographic coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Theater is immutable reference data for one venue. Instances are
// constructed once at startup and never mutated.
type Theater struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Address  string       `json:"address"`
	Chain    TheaterChain `json:"chain"`
	Location Location     `json:"location"`
}

// Movie describes a film playing at a venue. Identity is the normalized
// title key, not a catalog id; metadata fields are best-effort defaults
// when the venue publishes nothing better.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       []string `json:"genre"`
	Rating      string   `json:"rating"`
	Duration    int      `json:"duration"` // minutes
	Description string   `json:"description"`
	PosterURL   string   `json:"posterUrl,omitempty"`
}

// DefaultDuration is assumed when a venue does not publish a runtime.
const DefaultDuration = 120

// Showtime is a single screening. StartTime and EndTime are absolute UTC
// instants; EndTime is always StartTime plus the movie duration.
type Showtime struct {
	ID             string    `json:"id"`
	MovieID        string    `json:"movieId"`
	TheaterID      string    `json:"theaterId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	TicketURL      string    `json:"ticketUrl,omitempty"`
	AvailableSeats int       `json:"availableSeats,omitempty"`
	Format         string    `json:"format,omitempty"` // IMAX, 3D, etc.
}

// MovieSchedule is the unit of output: one movie playing at one theater
// with its showtimes there. The same movie at two theaters yields two
// entries; there is no cross-theater dedup.
type MovieSchedule struct {
	Theater   Theater    `json:"theater"`
	Movie     Movie      `json:"movie"`
	Showtimes []Showtime `json:"showtimes"`
}
