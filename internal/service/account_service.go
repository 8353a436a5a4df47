package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/pkg/util"
)

// AccountService coordinates the account lifecycle: registration,
// credential verification, profile changes, role assignment, and
// suspension. It is the sole caller of the account repository.
type AccountService struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// AccountDependencies encapsulates requirements for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The plaintext password is hashed
// before it reaches the repository; duplicate login ids surface as a
// conflict regardless of how the duplicate's status ended up.
func (s *AccountService) Register(ctx context.Context, loginID, password, displayName string) (*domain.Identity, error) {
	if loginID == "" || password == "" || displayName == "" {
		return nil, util.NewValidationError("login_id, password, display_name required", nil)
	}

	secret, err := auth.HashSecret(password, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	account, err := s.accounts.Insert(ctx, loginID, secret, displayName)
	if err != nil {
		if errors.Is(err, repository.ErrLoginIDTaken) {
			return nil, util.NewConflict("login id already registered", nil)
		}
		return nil, mapStorageError(err)
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{LoginID: account.LoginID})
	return domain.IdentityOf(account), nil
}

// Authenticate verifies credentials and returns an identity snapshot.
// Unknown login id, wrong password, and suspended account all fail with
// the same error so callers cannot probe for account existence or
// suspension state.
func (s *AccountService) Authenticate(ctx context.Context, loginID, password string) (*domain.Identity, error) {
	account, err := s.accounts.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			auth.BurnVerification(password)
			return nil, util.NewInvalidCredentials()
		}
		return nil, mapStorageError(err)
	}
	if account.Suspended() {
		auth.BurnVerification(password)
		return nil, util.NewInvalidCredentials()
	}
	if err := auth.VerifySecret(account.Secret, password); err != nil {
		return nil, util.NewInvalidCredentials()
	}

	s.publish(ctx, events.EventAccountLoggedIn, account.ID, nil)
	return domain.IdentityOf(account), nil
}

// CheckAvailability reports whether a login id is still free. The
// answer is a hint, not a reservation: a racing registration can take
// the id before the caller's own Register lands.
func (s *AccountService) CheckAvailability(ctx context.Context, loginID string) (bool, error) {
	taken, err := s.accounts.Exists(ctx, loginID)
	if err != nil {
		return false, mapStorageError(err)
	}
	return !taken, nil
}

// ModifyProfile updates the display name and nothing else; the stored
// credential and login id are untouched.
func (s *AccountService) ModifyProfile(ctx context.Context, accountID int64, displayName string) (*domain.Identity, error) {
	if displayName == "" {
		return nil, util.NewValidationError("display_name required", nil)
	}

	account, err := s.accounts.UpdateProfile(ctx, accountID, displayName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("account", nil)
		}
		return nil, mapStorageError(err)
	}

	s.publish(ctx, events.EventProfileModified, account.ID, events.ProfileModifiedPayload{DisplayName: account.DisplayName})
	return domain.IdentityOf(account), nil
}

// AssignRole sets the account role. Role values are opaque small
// integers; no range is enforced.
func (s *AccountService) AssignRole(ctx context.Context, accountID int64, role int) (*domain.Account, error) {
	account, err := s.accounts.AssignRole(ctx, accountID, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("account", nil)
		}
		return nil, mapStorageError(err)
	}

	s.publish(ctx, events.EventRoleAssigned, account.ID, events.RoleAssignedPayload{Role: role})
	return account, nil
}

// Suspend puts the account to sleep. Suspension is terminal: no
// reinstatement operation exists. Suspending an already-suspended
// account is a no-op success.
func (s *AccountService) Suspend(ctx context.Context, accountID int64) error {
	account, err := s.accounts.SetStatus(ctx, accountID, domain.AccountStatusSuspended)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return util.NewNotFound("account", nil)
		}
		return mapStorageError(err)
	}

	s.publish(ctx, events.EventAccountSuspended, account.ID, nil)
	return nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, accountID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func mapStorageError(err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return util.NewUnavailable(err)
	}
	return util.NewInternalError(err)
}
