package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// UserFilter narrows a user listing. Zero values are omitted from the query.
type UserFilter struct {
	Page   int
	Limit  int
	Role   string
	Search string
}

func (f UserFilter) query() string {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// UserService covers user administration. Listing and role changes require
// the admin role on the backend.
type UserService struct {
	api API
}

func NewUserService(a API) *UserService {
	return &UserService{api: a}
}

func (s *UserService) List(ctx context.Context, filter UserFilter) ([]models.User, *models.Pagination, error) {
	env, err := s.api.Get(ctx, "/users"+filter.query())
	if err != nil {
		return nil, nil, fmt.Errorf("listing users: %w", err)
	}
	var users []models.User
	if err := env.Decode(&users); err != nil {
		return nil, nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, env.Pagination, nil
}

// Profile fetches the current user's full profile.
func (s *UserService) Profile(ctx context.Context) (*models.User, error) {
	env, err := s.api.Get(ctx, "/users/profile")
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	var user models.User
	if err := env.Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &user, nil
}

// SetRole changes a user's role.
func (s *UserService) SetRole(ctx context.Context, userID, role string) (*models.User, error) {
	env, err := s.api.Put(ctx, "/users/"+userID+"/role", map[string]string{"role": role})
	if err != nil {
		return nil, fmt.Errorf("updating role of %s: %w", userID, err)
	}
	var user models.User
	if err := env.Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &user, nil
}

// SetActive enables or disables a user account.
func (s *UserService) SetActive(ctx context.Context, userID string, active bool) (*models.User, error) {
	env, err := s.api.Put(ctx, "/users/"+userID+"/status", map[string]bool{"isActive": active})
	if err != nil {
		return nil, fmt.Errorf("updating status of %s: %w", userID, err)
	}
	var user models.User
	if err := env.Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &user, nil
}
