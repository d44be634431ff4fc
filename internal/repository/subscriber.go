package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gtmountains/newsletter/internal/model"
)

// ErrEmailExists is returned when a subscriber insert is rejected by the store.
// The rejected transaction has already been rolled back when it is returned.
var ErrEmailExists = errors.New("email already exists")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// CreateSubscriber inserts a subscriber in its own transaction and loads the
// store-assigned ID and CreatedAt back into sub.
//
// Any failure after the transaction has begun rolls it back and is reported as
// ErrEmailExists; the cause stays in the error chain for logging only.
func (r *Repository) CreateSubscriber(ctx context.Context, sub *model.Subscriber) error {
	query := `
		INSERT INTO subscribers (email)
		VALUES ($1)
		RETURNING id, created_at
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	var (
		id        int64
		createdAt = sub.CreatedAt
	)
	if err := tx.QueryRow(ctx, query, sub.Email).Scan(&id, &createdAt); err != nil {
		return rejectWrite(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return rejectWrite(ctx, tx, err)
	}

	sub.ID = id
	sub.CreatedAt = createdAt
	return nil
}

// ListSubscribers returns at most limit subscribers after skipping the first skip,
// in insertion order. It never returns a nil slice.
func (r *Repository) ListSubscribers(ctx context.Context, skip, limit int) ([]*model.Subscriber, error) {
	query := `
		SELECT id, email, created_at
		FROM subscribers
		ORDER BY id
		OFFSET $1
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]*model.Subscriber, 0)
	for rows.Next() {
		var sub model.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscribers: %w", err)
	}

	return subscribers, nil
}

// CountSubscribers returns the number of stored subscribers.
func (r *Repository) CountSubscribers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return n, nil
}

// rejectWrite rolls tx back and folds cause into ErrEmailExists.
func rejectWrite(ctx context.Context, tx pgx.Tx, cause error) error {
	// The request context may already be canceled; the rollback must still reach the server.
	if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		cause = errors.Join(cause, fmt.Errorf("rollback: %w", rbErr))
	}
	return fmt.Errorf("%w: %w", ErrEmailExists, cause)
}

// IsUniqueViolation reports whether err carries a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
