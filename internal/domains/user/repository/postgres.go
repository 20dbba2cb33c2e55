package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/user/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, email, full_name, has_membership, membership_start, membership_expiry, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.HasMembership,
		&user.MembershipStart,
		&user.MembershipExpiry,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found - return nil, not error
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *postgresRepository) UpdateMembership(ctx context.Context, userID uuid.UUID, hasMembership bool, start, expiry *time.Time) error {
	query := `
		UPDATE users
		SET has_membership = $2, membership_start = $3, membership_expiry = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, userID, hasMembership, start, expiry)
	if err != nil {
		return fmt.Errorf("failed to update membership projection: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetExpiredMembershipUsers(ctx context.Context, today time.Time) ([]*model.User, error) {
	query := `
		SELECT id, email, full_name, has_membership, membership_start, membership_expiry, created_at
		FROM users
		WHERE has_membership = true AND membership_expiry < $1
	`

	rows, err := r.pool.Query(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired memberships: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FullName,
			&user.HasMembership,
			&user.MembershipStart,
			&user.MembershipExpiry,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}
