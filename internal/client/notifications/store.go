// Package notifications maintains the local notification list and its
// unread count, reconciling realtime pushes with paginated fetches.
//
// Reconciliation rule: server-confirmed state is authoritative — fetches
// replace the window wholesale and adopt the server's unread total; local
// mutations and pushes re-derive the count from the list, and a push for an
// already-known id is ignored, so the two update paths can never double-count.
package notifications

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/campusevents/internal/client/api"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// API is the transport surface the store needs. Satisfied by *api.Client.
type API interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
	Put(ctx context.Context, path string, body any) (*api.Envelope, error)
	Delete(ctx context.Context, path string) (*api.Envelope, error)
}

// State is a snapshot of the notification list.
type State struct {
	Items       []models.Notification
	UnreadCount int
	Loading     bool
	Err         string
}

// SendRequest is the payload for sending a notification to one user or, in
// bulk, to a role or recipient list.
type SendRequest struct {
	UserID     string   `json:"userId,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
	Role       string   `json:"role,omitempty"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Type       string   `json:"type,omitempty"`
}

type Store struct {
	api API
	log logging.Logger

	mu    sync.RWMutex
	state State
}

func NewStore(a API, log logging.Logger) *Store {
	return &Store{api: a, log: log}
}

// State returns a snapshot; the items slice is copied so callers can hold it
// across later mutations.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Items = slices.Clone(s.state.Items)
	return st
}

// Fetch retrieves one page of notifications together with the unread total.
// The two requests run concurrently and their results are committed as one
// update.
func (s *Store) Fetch(ctx context.Context, page, limit int) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	var pageEnv, unreadEnv *api.Envelope

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pageEnv, err = s.api.Get(gctx, fmt.Sprintf("/notifications?page=%d&limit=%d", page, limit))
		return err
	})
	g.Go(func() error {
		var err error
		unreadEnv, err = s.api.Get(gctx, "/notifications?isRead=false&limit=1")
		return err
	})

	if err := g.Wait(); err != nil {
		msg := api.MessageOf(err)
		if msg == "" {
			msg = "Failed to fetch notifications"
		}
		s.mu.Lock()
		s.state.Loading = false
		s.state.Err = msg
		s.mu.Unlock()
		return err
	}

	var items []models.Notification
	if err := pageEnv.Decode(&items); err != nil {
		s.mu.Lock()
		s.state.Loading = false
		s.state.Err = "Failed to fetch notifications"
		s.mu.Unlock()
		return fmt.Errorf("decoding notifications: %w", err)
	}

	unread := 0
	if unreadEnv.Pagination != nil {
		unread = unreadEnv.Pagination.TotalItems
	}

	s.mu.Lock()
	s.state = State{Items: items, UnreadCount: unread}
	s.mu.Unlock()
	return nil
}

// Add applies a realtime push: the notification is prepended and the unread
// count re-derived. A push whose id is already present is ignored, it was
// counted when it was fetched.
func (s *Store) Add(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.state.Items {
		if existing.ID == n.ID {
			return
		}
	}
	s.state.Items = append([]models.Notification{n}, s.state.Items...)
	s.state.UnreadCount = countUnread(s.state.Items)
}

// MarkAsRead confirms the read with the backend first and mutates local
// state only on success. A failure leaves the list untouched; it is logged
// rather than surfaced, so the surrounding UI stays responsive.
func (s *Store) MarkAsRead(ctx context.Context, id string) error {
	if _, err := s.api.Put(ctx, "/notifications/"+id+"/read", nil); err != nil {
		s.log.Error(ctx, "failed to mark notification as read", "id", id, "error", err)
		return err
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Items {
		if s.state.Items[i].ID == id && !s.state.Items[i].IsRead {
			s.state.Items[i].IsRead = true
			s.state.Items[i].ReadAt = &now
		}
	}
	s.state.UnreadCount = countUnread(s.state.Items)
	return nil
}

// MarkAllAsRead follows the same call-then-reconcile order for the whole
// list.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	if _, err := s.api.Put(ctx, "/notifications/read-all", nil); err != nil {
		s.log.Error(ctx, "failed to mark all notifications as read", "error", err)
		return err
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Items {
		if !s.state.Items[i].IsRead {
			s.state.Items[i].IsRead = true
			s.state.Items[i].ReadAt = &now
		}
	}
	s.state.UnreadCount = 0
	return nil
}

// Remove deletes the notification server-side, then locally.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.api.Delete(ctx, "/notifications/"+id); err != nil {
		s.log.Error(ctx, "failed to delete notification", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Items = slices.DeleteFunc(s.state.Items, func(n models.Notification) bool {
		return n.ID == id
	})
	s.state.UnreadCount = countUnread(s.state.Items)
	return nil
}

// Send routes a notification to a single user through the backend.
func (s *Store) Send(ctx context.Context, req SendRequest) error {
	if _, err := s.api.Post(ctx, "/notifications/send", req); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}

// SendBulk routes a notification to a role or recipient list.
func (s *Store) SendBulk(ctx context.Context, req SendRequest) error {
	if _, err := s.api.Post(ctx, "/notifications/send-bulk", req); err != nil {
		return fmt.Errorf("sending bulk notification: %w", err)
	}
	return nil
}

// ClearError drops the last error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}

func countUnread(items []models.Notification) int {
	n := 0
	for _, item := range items {
		if !item.IsRead {
			n++
		}
	}
	return n
}
