package domain

import "time"

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account is the durable record of a registered identity. The credential
// secret is a bcrypt hash and never leaves the repository/service boundary.
type Account struct {
	ID          int64
	LoginID     string
	Secret      string
	DisplayName string
	Role        *int
	Status      AccountStatus
	CreatedAt   time.Time
}

// Suspended reports whether the account has been put to sleep.
func (a *Account) Suspended() bool {
	return a.Status == AccountStatusSuspended
}

// Identity is the read-only projection of an Account handed out on
// successful authentication. It carries no secret and no status.
type Identity struct {
	AccountID   int64  `json:"account_id"`
	LoginID     string `json:"login_id"`
	DisplayName string `json:"display_name"`
	Role        *int   `json:"role,omitempty"`
}

// IdentityOf projects an Account into the snapshot consumed by the
// session layer.
func IdentityOf(a *Account) *Identity {
	return &Identity{
		AccountID:   a.ID,
		LoginID:     a.LoginID,
		DisplayName: a.DisplayName,
		Role:        a.Role,
	}
}
