package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountLoggedIn   EventType = "account_logged_in"
	EventProfileModified   EventType = "profile_modified"
	EventRoleAssigned      EventType = "role_assigned"
	EventAccountSuspended  EventType = "account_suspended"
)

// Event represents a domain event emitted by the account service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID int64       `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	LoginID string `json:"login_id"`
}

// ProfileModifiedPayload payload.
type ProfileModifiedPayload struct {
	DisplayName string `json:"display_name"`
}

// RoleAssignedPayload payload.
type RoleAssignedPayload struct {
	Role int `json:"role"`
}
