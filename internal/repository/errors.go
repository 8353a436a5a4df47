package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode is the Postgres error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

var (
	// ErrNotFound indicates no account matched the lookup key.
	ErrNotFound = errors.New("account not found")
	// ErrLoginIDTaken indicates an insert collided with the login_id
	// uniqueness constraint.
	ErrLoginIDTaken = errors.New("login id already taken")
	// ErrUnavailable wraps storage failures and timeouts.
	ErrUnavailable = errors.New("storage unavailable")
)

// mapError converts pgx errors into repository sentinels. The uniqueness
// constraint on accounts.login_id is what makes concurrent inserts for
// the same login id yield exactly one success; detecting the violation
// here is the other half of that contract.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrLoginIDTaken
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
