package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// EventFilter narrows an event listing. Zero values are omitted from the
// query.
type EventFilter struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Status   string
}

func (f EventFilter) query() string {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// EventData is the payload for creating or updating an event.
type EventData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// EventService covers events, categories, and registrations.
type EventService struct {
	api API
}

func NewEventService(a API) *EventService {
	return &EventService{api: a}
}

func (s *EventService) List(ctx context.Context, filter EventFilter) ([]models.Event, *models.Pagination, error) {
	env, err := s.api.Get(ctx, "/events"+filter.query())
	if err != nil {
		return nil, nil, fmt.Errorf("listing events: %w", err)
	}
	var events []models.Event
	if err := env.Decode(&events); err != nil {
		return nil, nil, fmt.Errorf("decoding events: %w", err)
	}
	return events, env.Pagination, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	env, err := s.api.Get(ctx, "/events/"+id)
	if err != nil {
		return nil, fmt.Errorf("fetching event %s: %w", id, err)
	}
	var event models.Event
	if err := env.Decode(&event); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Create(ctx context.Context, data EventData) (*models.Event, error) {
	env, err := s.api.Post(ctx, "/events", data)
	if err != nil {
		return nil, fmt.Errorf("creating event: %w", err)
	}
	var event models.Event
	if err := env.Decode(&event); err != nil {
		return nil, fmt.Errorf("decoding created event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Update(ctx context.Context, id string, data EventData) (*models.Event, error) {
	env, err := s.api.Put(ctx, "/events/"+id, data)
	if err != nil {
		return nil, fmt.Errorf("updating event %s: %w", id, err)
	}
	var event models.Event
	if err := env.Decode(&event); err != nil {
		return nil, fmt.Errorf("decoding updated event: %w", err)
	}
	return &event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.api.Delete(ctx, "/events/"+id); err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	return nil
}

func (s *EventService) Categories(ctx context.Context) ([]models.Category, error) {
	env, err := s.api.Get(ctx, "/categories")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	var categories []models.Category
	if err := env.Decode(&categories); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}
	return categories, nil
}

// Register registers the current user for an event.
func (s *EventService) Register(ctx context.Context, eventID string) (*models.Registration, error) {
	env, err := s.api.Post(ctx, "/registrations", map[string]string{"eventId": eventID})
	if err != nil {
		return nil, fmt.Errorf("registering for event %s: %w", eventID, err)
	}
	var reg models.Registration
	if err := env.Decode(&reg); err != nil {
		return nil, fmt.Errorf("decoding registration: %w", err)
	}
	return &reg, nil
}

// CancelRegistration withdraws a registration.
func (s *EventService) CancelRegistration(ctx context.Context, registrationID string) error {
	if _, err := s.api.Delete(ctx, "/registrations/"+registrationID); err != nil {
		return fmt.Errorf("cancelling registration %s: %w", registrationID, err)
	}
	return nil
}

// MyRegistrations lists the current user's registrations.
func (s *EventService) MyRegistrations(ctx context.Context) ([]models.Registration, error) {
	env, err := s.api.Get(ctx, "/registrations")
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	var regs []models.Registration
	if err := env.Decode(&regs); err != nil {
		return nil, fmt.Errorf("decoding registrations: %w", err)
	}
	return regs, nil
}
