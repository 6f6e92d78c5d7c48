package models

import "time"

// APIResponse is the envelope returned by the aggregation layer. Success
// false means "no data available", never a partial result.
type APIResponse[T any] struct {
	Data      T         `json:"data"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TimeRange is a time-of-day window in HH:MM form.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FilterOptions carries caller-supplied predicate parameters. Only the
// theater filter is applied during aggregation; genre and time-window
// filtering is left to the consumer of the merged result.
type FilterOptions struct {
	Theaters  []TheaterChain `json:"theaters,omitempty"`
	Genres    []string       `json:"genres,omitempty"`
	TimeRange *TimeRange     `json:"timeRange,omitempty"`
}
