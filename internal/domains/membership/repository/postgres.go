package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/membership/model"
)

const transactionColumns = `
	id, user_id, plan_id, transaction_date, start_date, expiry_date,
	amount, payment_method, payment_status, status,
	auto_renewal, renewal_attempts, next_renewal_date, last_renewal_attempt,
	cancellation_date, cancellation_reason,
	grace_period_start, grace_period_end, is_in_grace_period`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) CreateTransaction(ctx context.Context, tx *model.MembershipTransaction) error {
	query := `
		INSERT INTO membership_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.pool.Exec(ctx, query,
		tx.ID, tx.UserID, tx.PlanID, tx.TransactionDate, tx.StartDate, tx.ExpiryDate,
		tx.Amount, tx.PaymentMethod, tx.PaymentStatus, tx.Status,
		tx.AutoRenewal, tx.RenewalAttempts, tx.NextRenewalDate, tx.LastRenewalAttempt,
		tx.CancellationDate, tx.CancellationReason,
		tx.GracePeriodStart, tx.GracePeriodEnd, tx.IsInGracePeriod,
	)
	if err != nil {
		return fmt.Errorf("failed to create membership transaction: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateTransaction(ctx context.Context, tx *model.MembershipTransaction) error {
	query := `
		UPDATE membership_transactions
		SET status = $2, payment_status = $3,
			auto_renewal = $4, renewal_attempts = $5,
			next_renewal_date = $6, last_renewal_attempt = $7,
			cancellation_date = $8, cancellation_reason = $9,
			grace_period_start = $10, grace_period_end = $11, is_in_grace_period = $12
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		tx.ID, tx.Status, tx.PaymentStatus,
		tx.AutoRenewal, tx.RenewalAttempts,
		tx.NextRenewalDate, tx.LastRenewalAttempt,
		tx.CancellationDate, tx.CancellationReason,
		tx.GracePeriodStart, tx.GracePeriodEnd, tx.IsInGracePeriod,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTransactionNotFound
	}
	return nil
}

func (r *postgresRepository) GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.MembershipTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM membership_transactions WHERE id = $1`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tx, nil
}

func (r *postgresRepository) GetActiveTransaction(ctx context.Context, userID uuid.UUID) (*model.MembershipTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM membership_transactions
		WHERE user_id = $1 AND status = $2
		ORDER BY transaction_date DESC
		LIMIT 1
	`

	tx, err := scanTransaction(r.pool.QueryRow(ctx, query, userID, model.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tx, nil
}

func (r *postgresRepository) GetUserTransactions(ctx context.Context, userID uuid.UUID) ([]*model.MembershipTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM membership_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC
	`
	return r.queryTransactions(ctx, query, userID)
}

func (r *postgresRepository) GetTransactionsForRenewal(ctx context.Context, renewalDate time.Time) ([]*model.MembershipTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM membership_transactions
		WHERE status = $1 AND auto_renewal = true AND expiry_date::date = $2::date
	`
	return r.queryTransactions(ctx, query, model.StatusActive, renewalDate)
}

func (r *postgresRepository) GetTransactionsExpiringOn(ctx context.Context, targetDate time.Time) ([]*model.MembershipTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM membership_transactions
		WHERE status = $1 AND expiry_date::date = $2::date
	`
	return r.queryTransactions(ctx, query, model.StatusActive, targetDate)
}

func (r *postgresRepository) GetGracePeriodExpirations(ctx context.Context, today time.Time) ([]*model.MembershipTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM membership_transactions
		WHERE is_in_grace_period = true AND grace_period_end::date <= $1::date
	`
	return r.queryTransactions(ctx, query, today)
}

func (r *postgresRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]*model.MembershipTransaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query membership transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.MembershipTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*model.MembershipTransaction, error) {
	var tx model.MembershipTransaction
	err := row.Scan(
		&tx.ID, &tx.UserID, &tx.PlanID, &tx.TransactionDate, &tx.StartDate, &tx.ExpiryDate,
		&tx.Amount, &tx.PaymentMethod, &tx.PaymentStatus, &tx.Status,
		&tx.AutoRenewal, &tx.RenewalAttempts, &tx.NextRenewalDate, &tx.LastRenewalAttempt,
		&tx.CancellationDate, &tx.CancellationReason,
		&tx.GracePeriodStart, &tx.GracePeriodEnd, &tx.IsInGracePeriod,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan membership transaction: %w", err)
	}
	return &tx, nil
}
