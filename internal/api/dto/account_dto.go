package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	LoginID     string `json:"login_id"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

// ModifyProfileRequest payload for profile changes.
type ModifyProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// AssignRoleRequest payload for role assignment.
type AssignRoleRequest struct {
	Role int `json:"role"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AvailabilityResponse reports whether a login id is free. The answer
// is advisory; a later registration for the same id can still conflict.
type AvailabilityResponse struct {
	LoginID   string `json:"login_id"`
	Available bool   `json:"available"`
}
