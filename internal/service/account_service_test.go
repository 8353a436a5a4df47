package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/pkg/util"
)

func newTestService() *AccountService {
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	return NewAccountService(cfg, AccountDependencies{
		AccountRepo: repository.NewMemoryAccountRepository(),
	})
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *util.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", registered.LoginID)
	assert.Equal(t, "Alice", registered.DisplayName)
	assert.Nil(t, registered.Role)

	identity, err := svc.Authenticate(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, registered.AccountID, identity.AccountID)
	assert.Equal(t, "u1", identity.LoginID)
	assert.Equal(t, "Alice", identity.DisplayName)
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name                           string
		loginID, password, displayName string
	}{
		{"missing login id", "", "p1", "Alice"},
		{"missing password", "u1", "", "Alice"},
		{"missing display name", "u1", "p1", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.loginID, tc.password, tc.displayName)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
		})
	}
}

func TestRegisterDuplicateLoginID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "u1", "other", "Bob")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	repo := repository.NewMemoryAccountRepository()
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	svc := NewAccountService(cfg, AccountDependencies{AccountRepo: repo})
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)

	account, err := repo.GetByLoginID(ctx, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, "p1", account.Secret)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Secret), []byte("p1")))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "u1", "wrong")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, err))
}

func TestAuthenticateUnknownLoginID(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate(context.Background(), "nobody", "p1")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, err))
}

func TestSuspendBlocksAuthentication(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "u2", "p2", "Bob")
	require.NoError(t, err)

	require.NoError(t, svc.Suspend(ctx, registered.AccountID))

	_, suspendedErr := svc.Authenticate(ctx, "u2", "p2")
	require.Error(t, suspendedErr)

	// The failure must be the same as a wrong password or an unknown
	// id; suspension state must not leak through error variance.
	_, wrongPwErr := svc.Authenticate(ctx, "u2", "wrong")
	_, unknownErr := svc.Authenticate(ctx, "ghost", "p2")
	assert.Equal(t, "INVALID_CREDENTIALS", domainCode(t, suspendedErr))
	assert.Equal(t, domainCode(t, wrongPwErr), domainCode(t, suspendedErr))
	assert.Equal(t, domainCode(t, unknownErr), domainCode(t, suspendedErr))
	assert.Equal(t, wrongPwErr.Error(), suspendedErr.Error())
}

func TestSuspendIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.Suspend(ctx, registered.AccountID))
	require.NoError(t, svc.Suspend(ctx, registered.AccountID))
}

func TestSuspendUnknownAccount(t *testing.T) {
	svc := newTestService()

	err := svc.Suspend(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestModifyProfileKeepsCredential(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)

	modified, err := svc.ModifyProfile(ctx, registered.AccountID, "Alice Cooper")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", modified.DisplayName)
	assert.Equal(t, "u1", modified.LoginID)

	identity, err := svc.Authenticate(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", identity.DisplayName)
}

func TestModifyProfileUnknownAccount(t *testing.T) {
	svc := newTestService()

	_, err := svc.ModifyProfile(context.Background(), 9999, "Nobody")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestAssignRole(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "u1", "p1", "Alice")
	require.NoError(t, err)

	account, err := svc.AssignRole(ctx, registered.AccountID, 2)
	require.NoError(t, err)
	require.NotNil(t, account.Role)
	assert.Equal(t, 2, *account.Role)

	identity, err := svc.Authenticate(ctx, "u1", "p1")
	require.NoError(t, err)
	require.NotNil(t, identity.Role)
	assert.Equal(t, 2, *identity.Role)
}

func TestAssignRoleUnknownAccount(t *testing.T) {
	svc := newTestService()

	_, err := svc.AssignRole(context.Background(), 9999, 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestCheckAvailability(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	available, err := svc.CheckAvailability(ctx, "u3")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.Register(ctx, "u3", "p3", "Carol")
	require.NoError(t, err)

	available, err = svc.CheckAvailability(ctx, "u3")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestAvailabilityIsAdvisory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	available, err := svc.CheckAvailability(ctx, "u3")
	require.NoError(t, err)
	require.True(t, available)

	// Another caller grabs the id after the check; our own registration
	// must then fail with a conflict despite the earlier true answer.
	_, err = svc.Register(ctx, "u3", "theirs", "Them")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "u3", "ours", "Us")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestConcurrentRegistrationSingleWinner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	const attempts = 32
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Register(ctx, "contested", "p1", "Racer")
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case domainCode(t, err) == "CONFLICT":
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	// And the winner's account is intact.
	identity, err := svc.Authenticate(ctx, "contested", "p1")
	require.NoError(t, err)
	assert.Equal(t, "contested", identity.LoginID)
}

func TestStorageFailureSurfacesAsUnavailable(t *testing.T) {
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	svc := NewAccountService(cfg, AccountDependencies{AccountRepo: failingRepo{}})

	_, err := svc.Authenticate(context.Background(), "u1", "p1")
	require.Error(t, err)
	assert.Equal(t, "UNAVAILABLE", domainCode(t, err))
}

// failingRepo simulates a storage outage for every operation.
type failingRepo struct{}

func (failingRepo) fail() error {
	return fmt.Errorf("%w: dial timeout", repository.ErrUnavailable)
}

func (f failingRepo) Insert(context.Context, string, string, string) (*domain.Account, error) {
	return nil, f.fail()
}

func (f failingRepo) GetByLoginID(context.Context, string) (*domain.Account, error) {
	return nil, f.fail()
}

func (f failingRepo) GetByID(context.Context, int64) (*domain.Account, error) {
	return nil, f.fail()
}

func (f failingRepo) UpdateProfile(context.Context, int64, string) (*domain.Account, error) {
	return nil, f.fail()
}

func (f failingRepo) AssignRole(context.Context, int64, int) (*domain.Account, error) {
	return nil, f.fail()
}

func (f failingRepo) SetStatus(context.Context, int64, domain.AccountStatus) (*domain.Account, error) {
	return nil, f.fail()
}

func (f failingRepo) Exists(context.Context, string) (bool, error) {
	return false, f.fail()
}
