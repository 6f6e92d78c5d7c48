package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"marquee/models"
	schedulesvc "marquee/services/schedule"
)

type scheduleService interface {
	GetSchedules(ctx context.Context, date time.Time, filters *models.FilterOptions) models.APIResponse[[]models.MovieSchedule]
	GetTheaters(ctx context.Context, chain *models.TheaterChain) models.APIResponse[[]models.Theater]
}

var _ scheduleService = (*schedulesvc.Service)(nil)

// ScheduleHandler exposes the aggregated showtime and theater endpoints.
type ScheduleHandler struct {
	Service scheduleService
}

func NewScheduleHandler(s scheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: s}
}

// GetShowtimes handles GET /api/showtimes?date=...&theaters=...&genres=...
// The date is required and validated but intentionally not used for cache
// keying: every venue returns its full multi-month window regardless.
func (h *ScheduleHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		http.Error(w, "date parameter is required", http.StatusBadRequest)
		return
	}

	date, err := parseDateParam(dateParam)
	if err != nil {
		http.Error(w, "invalid date format", http.StatusBadRequest)
		return
	}

	filters := &models.FilterOptions{}
	if theatersParam := r.URL.Query().Get("theaters"); theatersParam != "" {
		for _, tag := range strings.Split(theatersParam, ",") {
			// Unknown chain tags are dropped, not rejected.
			if chain, ok := models.ParseTheaterChain(strings.TrimSpace(tag)); ok {
				filters.Theaters = append(filters.Theaters, chain)
			}
		}
	}
	if genresParam := r.URL.Query().Get("genres"); genresParam != "" {
		filters.Genres = strings.Split(genresParam, ",")
	}

	writeJSON(w, h.Service.GetSchedules(r.Context(), date, filters))
}

// GetTheaters handles GET /api/theaters?chain=...
func (h *ScheduleHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	var chain *models.TheaterChain
	if chainParam := r.URL.Query().Get("chain"); chainParam != "" {
		if c, ok := models.ParseTheaterChain(chainParam); ok {
			chain = &c
		}
	}

	writeJSON(w, h.Service.GetTheaters(r.Context(), chain))
}

func parseDateParam(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
