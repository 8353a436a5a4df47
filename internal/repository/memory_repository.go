package repository

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/account-service/internal/domain"
)

// memoryAccountRepository is a map-backed implementation used by tests
// and as a fallback when no Postgres DSN is configured. The check for a
// taken login id and the insert happen under one lock, giving the same
// one-winner guarantee the database constraint provides.
type memoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[int64]*domain.Account
	byLogin  map[string]int64
	nextID   int64
}

// NewMemoryAccountRepository returns an empty in-memory implementation.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{
		accounts: make(map[int64]*domain.Account),
		byLogin:  make(map[string]int64),
		nextID:   1,
	}
}

func (r *memoryAccountRepository) Insert(_ context.Context, loginID, secret, displayName string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[loginID]; taken {
		return nil, ErrLoginIDTaken
	}

	account := &domain.Account{
		ID:          r.nextID,
		LoginID:     loginID,
		Secret:      secret,
		DisplayName: displayName,
		Status:      domain.AccountStatusActive,
		CreatedAt:   time.Now(),
	}
	r.accounts[account.ID] = account
	r.byLogin[loginID] = account.ID
	r.nextID++

	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) GetByLoginID(_ context.Context, loginID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byLogin[loginID]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r.accounts[id]
	return &copied, nil
}

func (r *memoryAccountRepository) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) UpdateProfile(_ context.Context, id int64, displayName string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	account.DisplayName = displayName
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) AssignRole(_ context.Context, id int64, role int) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	assigned := role
	account.Role = &assigned
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) SetStatus(_ context.Context, id int64, status domain.AccountStatus) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	account.Status = status
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) Exists(_ context.Context, loginID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, taken := r.byLogin[loginID]
	return taken, nil
}
