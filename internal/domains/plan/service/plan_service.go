package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/plan/model"
	"gymangel-backend/internal/domains/plan/repository"
	"gymangel-backend/pkg/cache"
	"gymangel-backend/pkg/logger"
)

const (
	planListCacheKey   = "plans:active"
	planDetailCacheKey = "plans:detail:%s"
)

type PlanService struct {
	repository repository.RepositoryInterface
	cache      cache.Cache
	cacheTTL   time.Duration
}

func NewPlanService(r repository.RepositoryInterface, c cache.Cache, cacheTTLMins int) ServiceInterface {
	return &PlanService{
		repository: r,
		cache:      c,
		cacheTTL:   time.Duration(cacheTTLMins) * time.Minute,
	}
}

// ListActivePlans trả về pricing catalog. Catalog gần như read-only nên
// cache thẳng response DTOs với TTL ngắn.
func (s *PlanService) ListActivePlans(ctx context.Context) ([]model.PlanResponse, error) {
	var cached []model.PlanResponse
	if found, err := s.cache.Get(ctx, planListCacheKey, &cached); err != nil {
		logger.Error("plan list cache read failed", err)
	} else if found {
		return cached, nil
	}

	plans, err := s.repository.GetActivePlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	responses := make([]model.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, plan.ToResponse())
	}

	if err := s.cache.Set(ctx, planListCacheKey, responses, s.cacheTTL); err != nil {
		logger.Error("plan list cache write failed", err)
	}

	return responses, nil
}

func (s *PlanService) GetPlan(ctx context.Context, planID uuid.UUID) (*model.PlanResponse, error) {
	key := fmt.Sprintf(planDetailCacheKey, planID)

	var cached model.PlanResponse
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		logger.Error("plan detail cache read failed", err)
	} else if found {
		return &cached, nil
	}

	plan, err := s.repository.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil || !plan.IsActive {
		return nil, model.ErrPlanNotFound
	}

	resp := plan.ToResponse()
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		logger.Error("plan detail cache write failed", err)
	}

	return &resp, nil
}
