package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gymangel-backend/internal/domains/discount/model"
)

type RepositoryInterface interface {
	// GetByCode returns nil, nil when no row matches (case-insensitive)
	GetByCode(ctx context.Context, code string) (*model.DiscountCode, error)

	// GetByID returns nil, nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error)

	// IncrementUsageTx tăng used_count trong transaction của order. Guard
	// usage_limit ngay trong UPDATE để hai checkout đua nhau không vượt limit.
	IncrementUsageTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
