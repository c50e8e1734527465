package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/campusevents/internal/client/api"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// fakeAPI answers the paired fetch requests and records mutations.
type fakeAPI struct {
	items       []models.Notification
	unreadTotal int

	putErr    error
	deleteErr error
	putPaths  []string
}

func (f *fakeAPI) Get(ctx context.Context, path string) (*api.Envelope, error) {
	if path == "/notifications?isRead=false&limit=1" {
		return &api.Envelope{
			Success:    true,
			Pagination: &models.Pagination{TotalItems: f.unreadTotal},
		}, nil
	}
	data, err := json.Marshal(f.items)
	if err != nil {
		return nil, err
	}
	return &api.Envelope{Success: true, Data: data}, nil
}

func (f *fakeAPI) Post(ctx context.Context, path string, body any) (*api.Envelope, error) {
	return &api.Envelope{Success: true}, nil
}

func (f *fakeAPI) Put(ctx context.Context, path string, body any) (*api.Envelope, error) {
	f.putPaths = append(f.putPaths, path)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &api.Envelope{Success: true}, nil
}

func (f *fakeAPI) Delete(ctx context.Context, path string) (*api.Envelope, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &api.Envelope{Success: true}, nil
}

func notif(id string, read bool) models.Notification {
	n := models.Notification{
		ID:        id,
		Title:     "t-" + id,
		Message:   "m-" + id,
		Type:      models.NotificationInfo,
		IsRead:    read,
		CreatedAt: time.Now(),
	}
	if read {
		now := time.Now()
		n.ReadAt = &now
	}
	return n
}

func requireInvariant(t *testing.T, st State) {
	t.Helper()
	unread := 0
	for _, n := range st.Items {
		if !n.IsRead {
			unread++
		}
	}
	require.Equal(t, unread, st.UnreadCount, "unread count must equal unread records")
}

func TestFetch_CombinesPageAndUnreadTotal(t *testing.T) {
	f := &fakeAPI{
		items:       []models.Notification{notif("n1", false), notif("n2", true), notif("n3", false)},
		unreadTotal: 2,
	}
	s := NewStore(f, logging.NewDiscard())

	require.NoError(t, s.Fetch(context.Background(), 1, 20))

	st := s.State()
	require.Len(t, st.Items, 3)
	require.Equal(t, 2, st.UnreadCount)
	require.False(t, st.Loading)
	requireInvariant(t, st)
}

func TestFetch_FailureSetsError(t *testing.T) {
	s := NewStore(&failingAPI{}, logging.NewDiscard())

	err := s.Fetch(context.Background(), 1, 20)
	require.Error(t, err)

	st := s.State()
	require.False(t, st.Loading)
	require.NotEmpty(t, st.Err)
	require.Empty(t, st.Items)
}

type failingAPI struct{}

func (f *failingAPI) Get(ctx context.Context, path string) (*api.Envelope, error) {
	return nil, &api.HTTPError{Status: http.StatusInternalServerError, Message: "boom"}
}

func (f *failingAPI) Post(ctx context.Context, path string, body any) (*api.Envelope, error) {
	return nil, &api.HTTPError{Status: http.StatusInternalServerError}
}

func (f *failingAPI) Put(ctx context.Context, path string, body any) (*api.Envelope, error) {
	return nil, &api.HTTPError{Status: http.StatusInternalServerError}
}

func (f *failingAPI) Delete(ctx context.Context, path string) (*api.Envelope, error) {
	return nil, &api.HTTPError{Status: http.StatusInternalServerError}
}

func TestAdd_PrependsAndCountsOnce(t *testing.T) {
	s := NewStore(&fakeAPI{}, logging.NewDiscard())

	s.Add(notif("n1", false))
	st := s.State()
	require.Equal(t, 1, st.UnreadCount)
	require.Equal(t, "n1", st.Items[0].ID)

	// A duplicate push for an id we already hold must not count again.
	s.Add(notif("n1", false))
	st = s.State()
	require.Len(t, st.Items, 1)
	require.Equal(t, 1, st.UnreadCount)
	requireInvariant(t, st)
}

func TestAddAndFetch_NeverDoubleCount(t *testing.T) {
	pushed := notif("pushed", false)
	f := &fakeAPI{
		// The fetched window already contains the pushed record, as the
		// backend would return it.
		items:       []models.Notification{pushed, notif("n2", false)},
		unreadTotal: 2,
	}
	s := NewStore(f, logging.NewDiscard())
	ctx := context.Background()

	t.Run("push then fetch", func(t *testing.T) {
		s.Add(pushed)
		require.NoError(t, s.Fetch(ctx, 1, 20))
		st := s.State()
		require.Len(t, st.Items, 2)
		require.Equal(t, 2, st.UnreadCount)
		requireInvariant(t, st)
	})

	t.Run("fetch then push", func(t *testing.T) {
		require.NoError(t, s.Fetch(ctx, 1, 20))
		s.Add(pushed)
		st := s.State()
		require.Len(t, st.Items, 2)
		require.Equal(t, 2, st.UnreadCount)
		requireInvariant(t, st)
	})
}

func TestMarkAsRead_UpdatesAfterConfirmation(t *testing.T) {
	f := &fakeAPI{items: []models.Notification{notif("n1", false)}, unreadTotal: 1}
	s := NewStore(f, logging.NewDiscard())
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, 1, 20))

	require.NoError(t, s.MarkAsRead(ctx, "n1"))
	require.Equal(t, []string{"/notifications/n1/read"}, f.putPaths)

	st := s.State()
	require.True(t, st.Items[0].IsRead)
	require.NotNil(t, st.Items[0].ReadAt)
	require.Equal(t, 0, st.UnreadCount)
	requireInvariant(t, st)
}

func TestMarkAsRead_BackendFailureLeavesStateUntouched(t *testing.T) {
	f := &fakeAPI{
		items:       []models.Notification{notif("n1", false), notif("n2", false)},
		unreadTotal: 2,
		putErr:      &api.NetworkError{Err: errors.New("connection reset")},
	}
	s := NewStore(f, logging.NewDiscard())
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, 1, 20))

	before := s.State()
	require.Error(t, s.MarkAsRead(ctx, "n1"))
	after := s.State()

	require.Equal(t, before, after)
	requireInvariant(t, after)
}

func TestMarkAllAsRead(t *testing.T) {
	f := &fakeAPI{
		items:       []models.Notification{notif("n1", false), notif("n2", true), notif("n3", false)},
		unreadTotal: 2,
	}
	s := NewStore(f, logging.NewDiscard())
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, 1, 20))

	require.NoError(t, s.MarkAllAsRead(ctx))

	st := s.State()
	require.Equal(t, 0, st.UnreadCount)
	for _, n := range st.Items {
		require.True(t, n.IsRead)
	}
	requireInvariant(t, st)
}

func TestRemove_DeletesLocallyAfterConfirmation(t *testing.T) {
	f := &fakeAPI{
		items:       []models.Notification{notif("n1", false), notif("n2", true)},
		unreadTotal: 1,
	}
	s := NewStore(f, logging.NewDiscard())
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, 1, 20))

	require.NoError(t, s.Remove(ctx, "n1"))

	st := s.State()
	require.Len(t, st.Items, 1)
	require.Equal(t, "n2", st.Items[0].ID)
	require.Equal(t, 0, st.UnreadCount)
	requireInvariant(t, st)
}

func TestRemove_BackendFailureLeavesStateUntouched(t *testing.T) {
	f := &fakeAPI{
		items:       []models.Notification{notif("n1", false)},
		unreadTotal: 1,
		deleteErr:   &api.HTTPError{Status: http.StatusInternalServerError},
	}
	s := NewStore(f, logging.NewDiscard())
	ctx := context.Background()
	require.NoError(t, s.Fetch(ctx, 1, 20))

	before := s.State()
	require.Error(t, s.Remove(ctx, "n1"))
	require.Equal(t, before, s.State())
}
