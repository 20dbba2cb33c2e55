package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/discount/model"
)

const discountColumns = `
	id, code, discount_type, value, valid_from, valid_until,
	is_active, usage_limit, used_count, minimum_order_amount, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByCode(ctx context.Context, code string) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE LOWER(code) = LOWER($1)
	`
	return r.queryOne(ctx, query, code)
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discount_codes
		WHERE id = $1
	`
	return r.queryOne(ctx, query, id)
}

func (r *postgresRepository) IncrementUsageTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
		UPDATE discount_codes
		SET used_count = used_count + 1
		WHERE id = $1
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment discount usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUsageLimitReached
	}
	return nil
}

func (r *postgresRepository) queryOne(ctx context.Context, query string, arg interface{}) (*model.DiscountCode, error) {
	code := &model.DiscountCode{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&code.ID, &code.Code, &code.DiscountType, &code.Value,
		&code.ValidFrom, &code.ValidUntil,
		&code.IsActive, &code.UsageLimit, &code.UsedCount,
		&code.MinimumOrderAmount, &code.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get discount code: %w", err)
	}
	return code, nil
}
