package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/student-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
)

// Event represents a domain event emitted by services. Subject is the
// account email the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and timestamp.
func NewEvent(eventType EventType, subject string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserRegisteredPayload accompanies EventUserRegistered.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// UserLoggedInPayload accompanies EventUserLoggedIn.
type UserLoggedInPayload struct {
	UserID string `json:"user_id"`
}
