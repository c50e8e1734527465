// Package session owns the client's view of "who is logged in and with what
// token". All mutation is funneled through the Manager's named operations;
// every other component only reads the state or calls through the Manager.
package session

import (
	"fmt"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// Status is the coarse position in the session lifecycle.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is an immutable snapshot of the session. User is replaced wholesale
// on each successful fetch, never partially mutated.
type State struct {
	User    *models.User
	Token   string
	Loading bool
	Err     string
}

// Status derives the lifecycle position from the snapshot.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.User != nil:
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}

// event is a tagged state transition. The set is sealed: apply matches every
// variant exhaustively and panics on anything else, so a new variant that
// is not handled fails loudly in tests.
type event interface{ isEvent() }

// opStarted marks the beginning of login, register, or load-user.
type opStarted struct{}

// restoreStarted begins startup validation of a stored token. The token is
// part of the transition so the validation request can carry it.
type restoreStarted struct{ token string }

// loginSucceeded installs a fresh user and token together. Used for login,
// register, and the token-rotating password operations.
type loginSucceeded struct {
	user  *models.User
	token string
}

// userLoaded replaces the user snapshot, token unchanged. Used for load-user
// and profile updates, and for Initialize picking up a stored token.
type userLoaded struct {
	user  *models.User
	token string
}

// authFailed is a definitive rejection: user and token are dropped.
type authFailed struct{ msg string }

// loadFailedTransient records that the server could not be reached while
// validating a stored token. The token is kept: "server temporarily
// unreachable" must not be conflated with "credential invalid".
type loadFailedTransient struct {
	msg   string
	token string
}

// loggedOut resets the session.
type loggedOut struct{}

// errorCleared drops the last error message.
type errorCleared struct{}

func (opStarted) isEvent()           {}
func (restoreStarted) isEvent()      {}
func (loginSucceeded) isEvent()      {}
func (userLoaded) isEvent()          {}
func (authFailed) isEvent()          {}
func (loadFailedTransient) isEvent() {}
func (loggedOut) isEvent()           {}
func (errorCleared) isEvent()        {}

// apply is the transition function: it returns the next state for a given
// event and never mutates its input.
func apply(s State, ev event) State {
	switch ev := ev.(type) {
	case opStarted:
		s.Loading = true
		s.Err = ""
		return s
	case restoreStarted:
		return State{Token: ev.token, Loading: true}
	case loginSucceeded:
		return State{User: ev.user, Token: ev.token}
	case userLoaded:
		return State{User: ev.user, Token: ev.token}
	case authFailed:
		return State{Err: ev.msg}
	case loadFailedTransient:
		return State{Token: ev.token, Err: ev.msg}
	case loggedOut:
		return State{}
	case errorCleared:
		s.Err = ""
		return s
	default:
		panic(fmt.Sprintf("session: unhandled event %T", ev))
	}
}
