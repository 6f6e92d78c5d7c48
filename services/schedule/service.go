// Package schedule aggregates every venue's listings into one merged,
// filtered, cached result.
package schedule

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"marquee/internal/kvcache"
	"marquee/models"
	"marquee/services/venues"
)

// Service fans fetches out to every venue source, merges the results,
// applies the theater filter, and owns the cache.
type Service struct {
	sources     []venues.Source
	cache       *kvcache.Cache
	scheduleTTL time.Duration
	theaterTTL  time.Duration
	now         func() time.Time
}

// NewService returns an orchestrator over the given sources. Sources are
// injected so tests can substitute fixtures without network access.
func NewService(sources []venues.Source, cache *kvcache.Cache, scheduleTTL, theaterTTL time.Duration) *Service {
	return &Service{
		sources:     sources,
		cache:       cache,
		scheduleTTL: scheduleTTL,
		theaterTTL:  theaterTTL,
		now:         time.Now,
	}
}

// GetSchedules returns the merged schedule across all venues. The date
// parameter is accepted for interface compatibility but does not key the
// cache: every adapter returns its full multi-month window regardless.
func (s *Service) GetSchedules(ctx context.Context, _ time.Time, filters *models.FilterOptions) models.APIResponse[[]models.MovieSchedule] {
	cacheKey := scheduleCacheKey(filters)

	if cached, ok := s.cache.Get(cacheKey); ok {
		if data, ok := cached.([]models.MovieSchedule); ok {
			return s.ok(data)
		}
	}

	data, err := s.fetchAll(ctx)
	if err != nil {
		// Per-venue failures never reach here; this is the aggregate-level
		// path for defects in the merge itself. Callers must treat it as
		// "no data available", not a partial result.
		log.Printf("[schedule] aggregate fetch failed: %v", err)
		return models.APIResponse[[]models.MovieSchedule]{
			Data:      []models.MovieSchedule{},
			Success:   false,
			Error:     err.Error(),
			Timestamp: s.now().UTC(),
		}
	}

	data = filterByChain(data, filters)

	s.cache.Set(cacheKey, data, s.scheduleTTL)
	return s.ok(data)
}

// GetTheaters returns the static venue list, optionally filtered by
// chain. Venue metadata is near-static, so it is cached far longer than
// schedules.
func (s *Service) GetTheaters(_ context.Context, chain *models.TheaterChain) models.APIResponse[[]models.Theater] {
	cacheKey := theaterCacheKey(chain)

	if cached, ok := s.cache.Get(cacheKey); ok {
		if data, ok := cached.([]models.Theater); ok {
			return s.okTheaters(data)
		}
	}

	theaters := make([]models.Theater, 0, len(s.sources))
	for _, src := range s.sources {
		t := src.Theater()
		if chain != nil && t.Chain != *chain {
			continue
		}
		theaters = append(theaters, t)
	}

	s.cache.Set(cacheKey, theaters, s.theaterTTL)
	return s.okTheaters(theaters)
}

// fetchAll invokes every source concurrently and waits for all of them.
// Each source absorbs its own failures, so the join only fails on a
// programming defect (surfaced here as a recovered panic).
func (s *Service) fetchAll(ctx context.Context) (data []models.MovieSchedule, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("schedule aggregation panicked: %v", r)
		}
	}()

	results := make([][]models.MovieSchedule, len(s.sources))
	var wg conc.WaitGroup
	for i, src := range s.sources {
		i, src := i, src
		wg.Go(func() {
			results[i] = src.FetchSchedules(ctx)
		})
	}
	wg.Wait()

	var all []models.MovieSchedule
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func filterByChain(schedules []models.MovieSchedule, filters *models.FilterOptions) []models.MovieSchedule {
	if filters == nil || len(filters.Theaters) == 0 {
		return schedules
	}

	wanted := make(map[models.TheaterChain]bool, len(filters.Theaters))
	for _, c := range filters.Theaters {
		wanted[c] = true
	}

	kept := make([]models.MovieSchedule, 0, len(schedules))
	for _, sched := range schedules {
		if wanted[sched.Theater.Chain] {
			kept = append(kept, sched)
		}
	}
	return kept
}

func (s *Service) ok(data []models.MovieSchedule) models.APIResponse[[]models.MovieSchedule] {
	return models.APIResponse[[]models.MovieSchedule]{
		Data:      data,
		Success:   true,
		Timestamp: s.now().UTC(),
	}
}

func (s *Service) okTheaters(data []models.Theater) models.APIResponse[[]models.Theater] {
	return models.APIResponse[[]models.Theater]{
		Data:      data,
		Success:   true,
		Timestamp: s.now().UTC(),
	}
}

// scheduleCacheKey is coarse-grained on purpose: the theater selector is
// the only parameter that changes fetched content.
func scheduleCacheKey(filters *models.FilterOptions) string {
	key := "showtimes:all"
	if filters != nil && len(filters.Theaters) > 0 {
		chains := make([]string, len(filters.Theaters))
		for i, c := range filters.Theaters {
			chains[i] = string(c)
		}
		key += ":" + strings.Join(chains, ",")
	}
	return key
}

func theaterCacheKey(chain *models.TheaterChain) string {
	if chain == nil {
		return "theaters"
	}
	return "theaters:" + string(*chain)
}
