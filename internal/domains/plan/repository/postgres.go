package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/plan/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetActivePlans(ctx context.Context) ([]*model.MembershipPlan, error) {
	query := `
		SELECT id, name, description, duration_months, price, original_price,
			is_popular, is_active, features, created_at
		FROM membership_plans
		WHERE is_active = true
		ORDER BY duration_months ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active plans: %w", err)
	}
	defer rows.Close()

	var plans []*model.MembershipPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

func (r *postgresRepository) GetByID(ctx context.Context, planID uuid.UUID) (*model.MembershipPlan, error) {
	query := `
		SELECT id, name, description, duration_months, price, original_price,
			is_popular, is_active, features, created_at
		FROM membership_plans
		WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, planID)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return plan, nil
}

func scanPlan(row pgx.Row) (*model.MembershipPlan, error) {
	var plan model.MembershipPlan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.Description,
		&plan.DurationMonths,
		&plan.Price,
		&plan.OriginalPrice,
		&plan.IsPopular,
		&plan.IsActive,
		&plan.Features,
		&plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}
	return &plan, nil
}
