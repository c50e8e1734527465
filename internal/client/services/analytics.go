package services

import (
	"context"
	"fmt"
	"sync"
)

// Overview is the dashboard snapshot. Counts come from pagination totals of
// limit=1 listings, so a section is a single cheap request. Sections that
// failed carry a zero count and an entry in Errors.
type Overview struct {
	Events        int
	Users         int
	Registrations int
	Categories    int
	Errors        map[string]error
}

// AnalyticsService aggregates the dashboard counters.
type AnalyticsService struct {
	api API
}

func NewAnalyticsService(a API) *AnalyticsService {
	return &AnalyticsService{api: a}
}

// Overview fans out the dashboard's independent requests, each settling on
// its own. Partial failure yields partial data plus per-section errors,
// never an all-or-nothing batch.
func (s *AnalyticsService) Overview(ctx context.Context) *Overview {
	ov := &Overview{Errors: map[string]error{}}

	sections := []struct {
		name string
		path string
		dst  *int
	}{
		{"events", "/events?limit=1", &ov.Events},
		{"users", "/users?limit=1", &ov.Users},
		{"registrations", "/registrations?limit=1", &ov.Registrations},
		{"categories", "/categories?limit=1", &ov.Categories},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, sec := range sections {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.count(ctx, sec.path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ov.Errors[sec.name] = err
				return
			}
			*sec.dst = n
		}()
	}
	wg.Wait()

	return ov
}

func (s *AnalyticsService) count(ctx context.Context, path string) (int, error) {
	env, err := s.api.Get(ctx, path)
	if err != nil {
		return 0, err
	}
	if env.Pagination == nil {
		return 0, fmt.Errorf("no pagination in response for %s", path)
	}
	return env.Pagination.TotalItems, nil
}
