package service

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/plan/model"
)

type ServiceInterface interface {
	ListActivePlans(ctx context.Context) ([]model.PlanResponse, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*model.PlanResponse, error)
}
