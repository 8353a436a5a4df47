package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/account-service/internal/domain"
)

// AccountRepository defines persistence access for accounts. It is the
// only place account rows are read or written; login_id uniqueness is
// enforced here by the database constraint, atomically with the insert.
type AccountRepository interface {
	Insert(ctx context.Context, loginID, secret, displayName string) (*domain.Account, error)
	GetByLoginID(ctx context.Context, loginID string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id int64, displayName string) (*domain.Account, error)
	AssignRole(ctx context.Context, id int64, role int) (*domain.Account, error)
	SetStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Account, error)
	Exists(ctx context.Context, loginID string) (bool, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, login_id, credential_secret, display_name, role, status, created_at`

func scanAccount(row interface{ Scan(...any) error }) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.LoginID,
		&account.Secret,
		&account.DisplayName,
		&account.Role,
		&account.Status,
		&account.CreatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

func (r *accountRepository) Insert(ctx context.Context, loginID, secret, displayName string) (*domain.Account, error) {
	const query = `
        INSERT INTO accounts (login_id, credential_secret, display_name, status)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + accountColumns

	return scanAccount(r.pool.QueryRow(ctx, query,
		loginID,
		secret,
		displayName,
		domain.AccountStatusActive,
	))
}

func (r *accountRepository) GetByLoginID(ctx context.Context, loginID string) (*domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM accounts WHERE login_id=$1`

	return scanAccount(r.pool.QueryRow(ctx, query, loginID))
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
        SELECT ` + accountColumns + `
        FROM accounts WHERE id=$1`

	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id int64, displayName string) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET display_name=$1
        WHERE id=$2
        RETURNING ` + accountColumns

	return scanAccount(r.pool.QueryRow(ctx, query, displayName, id))
}

func (r *accountRepository) AssignRole(ctx context.Context, id int64, role int) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET role=$1
        WHERE id=$2
        RETURNING ` + accountColumns

	return scanAccount(r.pool.QueryRow(ctx, query, role, id))
}

func (r *accountRepository) SetStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET status=$1
        WHERE id=$2
        RETURNING ` + accountColumns

	return scanAccount(r.pool.QueryRow(ctx, query, status, id))
}

// Exists reports whether a login id is taken. The answer is advisory: a
// concurrent Insert can still win between this check and the caller's
// own Insert, which then fails with ErrLoginIDTaken.
func (r *accountRepository) Exists(ctx context.Context, loginID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM accounts WHERE login_id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, loginID).Scan(&exists); err != nil {
		return false, mapError(err)
	}
	return exists, nil
}
