package repository

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/plan/model"
)

type RepositoryInterface interface {
	// GetActivePlans returns active plans ordered by duration
	GetActivePlans(ctx context.Context) ([]*model.MembershipPlan, error)

	// GetByID returns nil, nil when the plan does not exist
	GetByID(ctx context.Context, planID uuid.UUID) (*model.MembershipPlan, error)
}
