package realtime

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// EventMessage is a message posted into an event room.
type EventMessage struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message"`
}

// decodeInto wraps a typed callback in a raw Handler, logging and dropping
// malformed payloads.
func decodeInto[T any](c *Channel, event string, fn func(T)) Handler {
	return func(data json.RawMessage) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			c.log.Warn(context.Background(), "malformed realtime payload", "event", event, "error", err)
			return
		}
		fn(v)
	}
}

// OnNotification subscribes to pushed notifications. The returned func
// unsubscribes.
func (c *Channel) OnNotification(fn func(models.Notification)) func() {
	return c.on(EventNotification, decodeInto(c, EventNotification, fn))
}

// OnEventUpdate subscribes to event record updates.
func (c *Channel) OnEventUpdate(fn func(models.Event)) func() {
	return c.on(EventEventUpdated, decodeInto(c, EventEventUpdated, fn))
}

// OnRegistrationUpdate subscribes to live registration changes.
func (c *Channel) OnRegistrationUpdate(fn func(models.Registration)) func() {
	return c.on(EventRegistrationUpdate, decodeInto(c, EventRegistrationUpdate, fn))
}

// OnEventMessage subscribes to event-room messages.
func (c *Channel) OnEventMessage(fn func(EventMessage)) func() {
	return c.on(EventEventMessage, decodeInto(c, EventEventMessage, fn))
}

// SendNotification emits a notification for the server to route. Dropped if
// not connected.
func (c *Channel) SendNotification(data any) {
	c.emit(EventSendNotification, data)
}

// SendEventUpdate emits an event update to interested subscribers.
func (c *Channel) SendEventUpdate(data any) {
	c.emit(EventEventUpdate, data)
}

// JoinEventRoom subscribes this connection to an event's room.
func (c *Channel) JoinEventRoom(eventID string) {
	c.emit(EventJoinEvent, eventID)
}

// LeaveEventRoom leaves an event's room.
func (c *Channel) LeaveEventRoom(eventID string) {
	c.emit(EventLeaveEvent, eventID)
}

// SendEventMessage posts a message into an event room.
func (c *Channel) SendEventMessage(eventID, message string) {
	c.emit(EventEventMessage, EventMessage{EventID: eventID, Message: message})
}
