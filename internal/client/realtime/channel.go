// Package realtime maintains the persistent notification channel: one
// websocket connection scoped to the authenticated user, delivering
// server-pushed events to subscribers and carrying room-scoped emits for
// event-specific updates.
package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/campusevents/internal/logging"
)

// Wire event names. Outbound are emitted by this client, inbound are pushed
// by the server. "event_message" travels both ways.
const (
	EventJoin             = "join"
	EventJoinEvent        = "join_event"
	EventLeaveEvent       = "leave_event"
	EventSendNotification = "send_notification"
	EventEventUpdate      = "event_update"
	EventEventMessage     = "event_message"

	EventNotification       = "notification"
	EventEventUpdated       = "event_updated"
	EventRegistrationUpdate = "registration_update"
)

// Envelope is the wire frame: {event, data}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the raw payload of a subscribed event.
type Handler func(data json.RawMessage)

// Channel manages the connection lifecycle. At most one connection is open
// at a time; Connect closes any prior one before dialing so a reconnect can
// never deliver events twice. Outbound emits while disconnected are dropped,
// not queued. Errors are logged and flip the connection status, nothing
// propagates to callers.
type Channel struct {
	url         string
	log         logging.Logger
	dialer      *websocket.Dialer
	redialDelay time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	userID    string
	gen       int
	subs      map[string]map[int]Handler
	nextSubID int

	// wmu serializes frame writes. Writes happen outside mu so a stalled
	// peer cannot block status reads or subscription changes.
	wmu sync.Mutex
}

func New(socketURL string, log logging.Logger) *Channel {
	return &Channel{
		url:         socketURL,
		log:         log,
		dialer:      websocket.DefaultDialer,
		redialDelay: 5 * time.Second,
		subs:        make(map[string]map[int]Handler),
	}
}

// Connected reports the current connection status.
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect opens the connection for the given user, tearing down any prior
// connection first. Dial failures are logged and retried on a fixed pace.
func (c *Channel) Connect(userID string) {
	c.mu.Lock()
	c.teardownLocked()
	c.userID = userID
	gen := c.gen
	c.mu.Unlock()

	c.dial(gen)
}

// Close tears the connection down and stops any pending redial.
func (c *Channel) Close() {
	c.mu.Lock()
	c.teardownLocked()
	c.userID = ""
	c.mu.Unlock()
}

// teardownLocked closes the live connection and advances the generation so
// in-flight read loops and redial timers belonging to it become no-ops.
func (c *Channel) teardownLocked() {
	c.gen++
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
}

func (c *Channel) dial(gen int) {
	c.mu.Lock()
	if c.gen != gen || c.userID == "" {
		c.mu.Unlock()
		return
	}
	userID := c.userID
	c.mu.Unlock()

	ctx := context.Background()
	conn, _, err := c.dialer.Dial(wsURL(c.url, userID), nil)
	if err != nil {
		c.log.Warn(ctx, "realtime dial failed", "url", c.url, "error", err)
		c.scheduleRedial(gen)
		return
	}

	c.mu.Lock()
	if c.gen != gen {
		// Closed or reconnected while dialing.
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	c.log.Info(ctx, "realtime connected", "user_id", userID)
	c.emit(EventJoin, userID)
	go c.readLoop(gen, conn)
}

func (c *Channel) scheduleRedial(gen int) {
	go func() {
		time.Sleep(c.redialDelay)
		c.dial(gen)
	}()
}

func (c *Channel) readLoop(gen int, conn *websocket.Conn) {
	ctx := context.Background()
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			c.mu.Lock()
			current := c.gen == gen
			if current && c.conn == conn {
				c.conn = nil
				c.connected = false
			}
			c.mu.Unlock()

			if current {
				c.log.Warn(ctx, "realtime connection lost", "error", err)
				c.scheduleRedial(gen)
			}
			return
		}
		c.dispatch(env)
	}
}

func (c *Channel) dispatch(env Envelope) {
	c.mu.Lock()
	handlers := make([]Handler, 0, len(c.subs[env.Event]))
	for _, h := range c.subs[env.Event] {
		handlers = append(handlers, h)
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(env.Data)
	}
}

// emit sends one frame, silently dropping it when disconnected.
func (c *Channel) emit(event string, data any) {
	c.mu.Lock()
	conn := c.conn
	connected := c.connected
	c.mu.Unlock()

	if !connected || conn == nil {
		c.log.Debug(context.Background(), "realtime emit dropped while disconnected", "event", event)
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		c.log.Error(context.Background(), "realtime emit encode failed", "event", event, "error", err)
		return
	}

	c.wmu.Lock()
	err = conn.WriteJSON(Envelope{Event: event, Data: raw})
	c.wmu.Unlock()
	if err != nil {
		c.log.Warn(context.Background(), "realtime emit failed", "event", event, "error", err)
	}
}

// on registers a handler and returns its disposer. Callers must invoke the
// disposer on teardown; it is the only cancellation mechanism.
func (c *Channel) on(event string, h Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	if c.subs[event] == nil {
		c.subs[event] = make(map[int]Handler)
	}
	c.subs[event][id] = h

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[event], id)
	}
}

// wsURL converts the configured http(s) URL to its ws(s) form and appends
// the user scoping query.
func wsURL(base, userID string) string {
	u := base
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return strings.TrimRight(u, "/") + "/socket?userId=" + userID
}
