package models

import "time"

// Event statuses as issued by the backend.
const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

type Event struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     *Category `json:"category,omitempty"`
	Organizer    *User     `json:"organizer,omitempty"`
	Location     string    `json:"location"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Capacity     int       `json:"capacity"`
	Registered   int       `json:"registeredCount"`
	Status       string    `json:"status"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// Registration statuses as issued by the backend.
const (
	RegistrationConfirmed = "confirmed"
	RegistrationWaitlist  = "waitlisted"
	RegistrationCancelled = "cancelled"
	RegistrationAttended  = "attended"
)

type Registration struct {
	ID           string    `json:"_id"`
	Event        *Event    `json:"event,omitempty"`
	User         *User     `json:"user,omitempty"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}
