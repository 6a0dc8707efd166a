// Package cache holds the client-side caches the engine updates after
// successful mutations: the collection catalog listing, the daily/weekly
// mastery counters, and the contribution calendar. Merge semantics live in
// pure functions so they stay testable without a running store.
package cache

import (
	"context"

	"learning-engine/internal/models"
)

// Stats is the aggregate daily and weekly mastery counter pair.
type Stats struct {
	Today int `bson:"today" json:"today"`
	Week  int `bson:"week" json:"week"`
}

// Contribution is one day's entry in the contribution calendar.
type Contribution struct {
	Date  string `bson:"date" json:"date"`
	Count int    `bson:"count" json:"count"`
}

// ApplyMastery returns s with both counters bumped by one mastered card.
func ApplyMastery(s Stats) Stats {
	s.Today++
	s.Week++
	return s
}

// UpsertContribution increments the entry for date, or appends a new
// {date, 1} entry when the day is not present yet. The input slice is not
// mutated.
func UpsertContribution(entries []Contribution, date string) []Contribution {
	out := make([]Contribution, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].Date == date {
			out[i].Count++
			return out
		}
	}
	return append(out, Contribution{Date: date, Count: 1})
}

// CollectionList caches the collection catalog. Invalidated wholesale on day
// rollover and after a registration.
type CollectionList interface {
	Get(ctx context.Context) ([]models.CollectionSummary, error)
	Put(ctx context.Context, list []models.CollectionSummary) error
	Invalidate(ctx context.Context) error
}

// StatsStore caches the daily/weekly mastery counters.
type StatsStore interface {
	Get(ctx context.Context) (Stats, error)
	IncrementMastered(ctx context.Context) error
}

// Calendar caches the contribution calendar.
type Calendar interface {
	Entries(ctx context.Context) ([]Contribution, error)
	RecordMastery(ctx context.Context, date string) error
}
