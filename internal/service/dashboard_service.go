package service

import (
	"context"
	"time"
	"wonders-cms/internal/data"
)

const summaryKey = "dashboard:summary"

// SummaryCache stores encoded values with a TTL.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, v interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
}

// DashboardService serves the admin dashboard counters.
type DashboardService struct {
	base
	cache SummaryCache
	ttl   time.Duration
}

func NewDashboardService(d Deps, cache SummaryCache, ttl time.Duration) *DashboardService {
	return &DashboardService{base: newBase(d, "dashboard"), cache: cache, ttl: ttl}
}

// Summary returns the row counts, served from the cache while fresh.
// Cache failures fall back to the database.
func (s *DashboardService) Summary(ctx context.Context) (*data.Summary, error) {
	var cached data.Summary
	if s.cache != nil {
		ok, err := s.cache.GetJSON(ctx, summaryKey, &cached)
		if err != nil {
			s.log.Error(err, "Failed to read summary from cache")
		} else if ok {
			return &cached, nil
		}
	}

	summary, err := data.NewSummaryRepository(s.db).Summary(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, summaryKey, summary, s.ttl); err != nil {
			s.log.Error(err, "Failed to cache summary")
		}
	}
	return summary, nil
}
