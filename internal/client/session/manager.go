package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/dmitrijs2005/campusevents/internal/client/api"
	"github.com/dmitrijs2005/campusevents/internal/client/credential"
	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// API is the transport surface the Manager needs. Satisfied by *api.Client.
type API interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
	Put(ctx context.Context, path string, body any) (*api.Envelope, error)
	Delete(ctx context.Context, path string) (*api.Envelope, error)
}

// Result is the uniform outcome of every auth operation. Nothing throws
// across the session API: callers always get a renderable result.
type Result struct {
	Success bool
	Error   string
}

func ok() Result             { return Result{Success: true} }
func fail(msg string) Result { return Result{Success: false, Error: msg} }

// RegisterData is the payload for account creation.
type RegisterData struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
}

// ProfileData is the payload for profile updates.
type ProfileData struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// userPayload matches the backend's {data: {user: {...}}} nesting on auth
// responses.
type userPayload struct {
	User *models.User `json:"user"`
}

// Manager orchestrates the auth lifecycle and owns the Session state. The
// credential store and the state are mutated here and nowhere else.
type Manager struct {
	api   API
	creds credential.Store
	log   logging.Logger

	mu    sync.RWMutex
	state State

	// epoch is the stale-response guard: it advances on every logout or
	// invalidation, and any request resolving under an older epoch is
	// discarded instead of being applied to the wrong session.
	epoch uint64

	onChange []func(State)
}

func NewManager(a API, creds credential.Store, log logging.Logger) *Manager {
	return &Manager{
		api:   a,
		creds: creds,
		log:   log,
		state: State{Loading: true},
	}
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the current bearer token, or "" when logged out. Wired into
// the API client as its token source.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

// OnChange registers an observer invoked after every state transition with
// the new snapshot. Registration is expected at wiring time, before the
// manager is used.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	m.onChange = append(m.onChange, fn)
	m.mu.Unlock()
}

// dispatch applies ev under the lock and notifies observers with the new
// snapshot after the lock is released, keeping the transition atomic
// relative to observers.
func (m *Manager) dispatch(ev event) State {
	m.mu.Lock()
	m.state = apply(m.state, ev)
	next := m.state
	observers := slices.Clone(m.onChange)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	return next
}

func (m *Manager) currentEpoch() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch
}

// stale reports whether a response that started under epoch resolved after
// the session it belongs to was torn down.
func (m *Manager) stale(epoch uint64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch != epoch
}

// Initialize restores the session on startup. A stored token is validated
// against /auth/me. A 401 means the credential is definitely invalid: it is
// cleared. Any other failure leaves the stored token in place so a transient
// outage does not force a re-login.
func (m *Manager) Initialize(ctx context.Context) {
	token, err := m.creds.Get(ctx)
	if err != nil {
		// Fail open to the logged-out state.
		m.log.Warn(ctx, "credential store unavailable", "error", err)
		token = ""
	}
	if token == "" {
		m.dispatch(loggedOut{})
		return
	}

	// The token is installed with the transition so /auth/me below carries it.
	m.dispatch(restoreStarted{token: token})

	epoch := m.currentEpoch()
	env, err := m.api.Get(ctx, "/auth/me")
	if m.stale(epoch) {
		return
	}
	if err != nil {
		if api.IsUnauthorized(err) {
			m.rejectAuth(ctx, "Session expired, please login again")
			return
		}
		m.log.Warn(ctx, "could not validate stored session", "error", err)
		m.dispatch(loadFailedTransient{msg: "Failed to load user", token: token})
		return
	}

	var payload userPayload
	if derr := env.Decode(&payload); derr != nil || payload.User == nil {
		m.log.Error(ctx, "malformed /auth/me response", "error", derr)
		m.dispatch(loadFailedTransient{msg: "Failed to load user", token: token})
		return
	}
	m.dispatch(userLoaded{user: payload.User, token: token})
}

// rejectAuth applies a definitive auth rejection: the persisted credential
// is dropped together with the session token, so the store keeps mirroring
// the session at every observation point. The clear is best-effort, like
// teardown's.
func (m *Manager) rejectAuth(ctx context.Context, msg string) Result {
	if err := m.creds.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing credential failed", "error", err)
	}
	m.dispatch(authFailed{msg: msg})
	return fail(msg)
}

// Login authenticates with email and password. On success the token is
// persisted and the session state updated together; there is no window
// where one is set without the other.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	m.dispatch(opStarted{})

	epoch := m.currentEpoch()
	env, err := m.api.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if m.stale(epoch) {
		return fail("session changed during login")
	}
	if err != nil {
		return m.rejectAuth(ctx, serverMessage(err, "Login failed"))
	}

	return m.installSession(ctx, env, "Login failed")
}

// Register creates an account and logs it in. Error causes are distinguished
// for user messaging.
func (m *Manager) Register(ctx context.Context, data RegisterData) Result {
	m.dispatch(opStarted{})

	epoch := m.currentEpoch()
	env, err := m.api.Post(ctx, "/auth/register", data)
	if m.stale(epoch) {
		return fail("session changed during registration")
	}
	if err != nil {
		var msg string
		switch {
		case api.IsNotFound(err):
			msg = "Registration service unavailable. Please try again later."
		case api.StatusOf(err) >= http.StatusInternalServerError:
			msg = "Server error, please retry later."
		default:
			msg = serverMessage(err, "Registration failed")
		}
		return m.rejectAuth(ctx, msg)
	}

	return m.installSession(ctx, env, "Registration failed")
}

// installSession persists the token from env and installs user+token as one
// transition.
func (m *Manager) installSession(ctx context.Context, env *api.Envelope, fallback string) Result {
	var payload userPayload
	if err := env.Decode(&payload); err != nil || payload.User == nil || env.Token == "" {
		m.log.Error(ctx, "malformed auth response", "error", err)
		return m.rejectAuth(ctx, fallback)
	}

	if err := m.creds.Set(ctx, env.Token); err != nil {
		// Storage unavailable fails open: the session still works for this
		// run, it just will not survive a restart.
		m.log.Warn(ctx, "persisting credential failed", "error", err)
	}
	m.dispatch(loginSucceeded{user: payload.User, token: env.Token})
	return ok()
}

// Logout invalidates the session server-side on a best-effort basis and then
// unconditionally clears local state. It always succeeds locally.
func (m *Manager) Logout(ctx context.Context) {
	if _, err := m.api.Post(ctx, "/auth/logout", nil); err != nil {
		m.log.Warn(ctx, "server-side logout failed", "error", err)
	}
	m.teardown(ctx)
}

// InvalidateToken drops the session after a definitive 401 outside the auth
// endpoints. Wired into the API client's OnUnauthorized hook.
func (m *Manager) InvalidateToken(ctx context.Context) {
	m.log.Info(ctx, "token rejected by server, logging out")
	m.teardown(ctx)
}

func (m *Manager) teardown(ctx context.Context) {
	m.mu.Lock()
	m.epoch++
	m.mu.Unlock()

	if err := m.creds.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing credential failed", "error", err)
	}
	m.dispatch(loggedOut{})
}

// LoadUser refetches the profile snapshot for the current token.
func (m *Manager) LoadUser(ctx context.Context) Result {
	epoch := m.currentEpoch()
	token := m.Token()

	env, err := m.api.Get(ctx, "/auth/me")
	if m.stale(epoch) {
		return fail("session changed")
	}
	if err != nil {
		msg := serverMessage(err, "Failed to load user")
		return fail(msg)
	}

	var payload userPayload
	if derr := env.Decode(&payload); derr != nil || payload.User == nil {
		return fail("Failed to load user")
	}
	m.dispatch(userLoaded{user: payload.User, token: token})
	return ok()
}

// UpdateProfile submits profile changes and replaces the user snapshot on
// success.
func (m *Manager) UpdateProfile(ctx context.Context, data ProfileData) Result {
	epoch := m.currentEpoch()
	token := m.Token()

	env, err := m.api.Put(ctx, "/auth/update-profile", data)
	if m.stale(epoch) {
		return fail("session changed")
	}
	if err != nil {
		return fail(serverMessage(err, "Profile update failed"))
	}

	var payload userPayload
	if derr := env.Decode(&payload); derr != nil || payload.User == nil {
		return fail("Profile update failed")
	}
	m.dispatch(userLoaded{user: payload.User, token: token})
	return ok()
}

// UpdatePassword changes the password. The server issues a fresh token,
// which replaces the stored one.
func (m *Manager) UpdatePassword(ctx context.Context, currentPassword, newPassword string) Result {
	epoch := m.currentEpoch()
	env, err := m.api.Put(ctx, "/auth/update-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
	if m.stale(epoch) {
		return fail("session changed")
	}
	if err != nil {
		return fail(serverMessage(err, "Password update failed"))
	}
	return m.installSession(ctx, env, "Password update failed")
}

// ForgotPassword requests a reset email. No state change.
func (m *Manager) ForgotPassword(ctx context.Context, email string) Result {
	_, err := m.api.Post(ctx, "/auth/forgot-password", map[string]string{"email": email})
	if err != nil {
		return fail(serverMessage(err, "Failed to send reset email"))
	}
	return ok()
}

// ResetPassword redeems a reset token for a new password and logs the user
// in with the freshly issued token.
func (m *Manager) ResetPassword(ctx context.Context, resetToken, password string) Result {
	m.dispatch(opStarted{})

	epoch := m.currentEpoch()
	env, err := m.api.Put(ctx, "/auth/reset-password/"+url.PathEscape(resetToken), map[string]string{
		"password": password,
	})
	if m.stale(epoch) {
		return fail("session changed")
	}
	if err != nil {
		return m.rejectAuth(ctx, serverMessage(err, "Password reset failed"))
	}
	return m.installSession(ctx, env, "Password reset failed")
}

// ClearError drops the last error message.
func (m *Manager) ClearError() {
	m.dispatch(errorCleared{})
}

// HasRole reports whether the current user holds any of the given roles.
// Always false when unauthenticated.
func (m *Manager) HasRole(roles ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.User == nil {
		return false
	}
	return slices.Contains(roles, m.state.User.Role)
}

// HasPermission reports whether the current user holds the permission,
// either explicitly on the record or through the role defaults. Always
// false when unauthenticated.
func (m *Manager) HasPermission(permission string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u := m.state.User
	if u == nil {
		return false
	}
	if len(u.Permissions) > 0 {
		return slices.Contains(u.Permissions, permission)
	}
	return slices.Contains(rolePermissions[u.Role], permission)
}

// serverMessage prefers the backend-provided message and falls back to a
// generic one.
func serverMessage(err error, fallback string) string {
	if msg := api.MessageOf(err); msg != "" {
		return msg
	}
	if api.IsNetworkError(err) {
		return fmt.Sprintf("%s: server unreachable", fallback)
	}
	return fallback
}
