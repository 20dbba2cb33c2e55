package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/membership/model"
)

type RepositoryInterface interface {
	CreateTransaction(ctx context.Context, tx *model.MembershipTransaction) error
	UpdateTransaction(ctx context.Context, tx *model.MembershipTransaction) error

	// GetTransactionByID returns nil, nil when absent
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.MembershipTransaction, error)

	// GetActiveTransaction returns the user's single Active entry (newest
	// first nếu data cũ có nhiều hơn một), nil nil when none
	GetActiveTransaction(ctx context.Context, userID uuid.UUID) (*model.MembershipTransaction, error)

	// GetUserTransactions returns full billing history, newest first
	GetUserTransactions(ctx context.Context, userID uuid.UUID) ([]*model.MembershipTransaction, error)

	// GetTransactionsForRenewal: Active, auto_renewal, expiry đúng ngày renewalDate
	GetTransactionsForRenewal(ctx context.Context, renewalDate time.Time) ([]*model.MembershipTransaction, error)

	// GetTransactionsExpiringOn: Active, expiry đúng ngày targetDate (reminders)
	GetTransactionsExpiringOn(ctx context.Context, targetDate time.Time) ([]*model.MembershipTransaction, error)

	// GetGracePeriodExpirations: in grace, grace_period_end <= today
	GetGracePeriodExpirations(ctx context.Context, today time.Time) ([]*model.MembershipTransaction, error)
}
