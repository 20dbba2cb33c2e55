package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gymangel-backend/internal/domains/membership/service"
)

// Mỗi sweep có handler riêng để asynq retry/timeout độc lập từng loại.
// Handlers chỉ là adapter mỏng, toàn bộ logic nằm trong service.

// ExpirySweepHandler chạy sweep thu hồi membership hết hạn
type ExpirySweepHandler struct {
	membershipService service.ServiceInterface
}

func NewExpirySweepHandler(s service.ServiceInterface) *ExpirySweepHandler {
	return &ExpirySweepHandler{membershipService: s}
}

func (h *ExpirySweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Running membership expiry sweep")

	if err := h.membershipService.CheckAndUpdateExpiredMemberships(ctx); err != nil {
		log.Error().Err(err).Msg("Membership expiry sweep failed")
		return fmt.Errorf("expiry sweep: %w", err)
	}
	return nil
}

// AutoRenewalHandler chạy sweep auto-renewal (expiry trong RenewalLeadDays ngày)
type AutoRenewalHandler struct {
	membershipService service.ServiceInterface
}

func NewAutoRenewalHandler(s service.ServiceInterface) *AutoRenewalHandler {
	return &AutoRenewalHandler{membershipService: s}
}

func (h *AutoRenewalHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Running membership auto-renewal sweep")

	if err := h.membershipService.ProcessAutoRenewals(ctx); err != nil {
		log.Error().Err(err).Msg("Auto-renewal sweep failed")
		return fmt.Errorf("auto-renewal sweep: %w", err)
	}
	return nil
}

// RenewalReminderHandler gửi reminder emails ở các mốc trước expiry
type RenewalReminderHandler struct {
	membershipService service.ServiceInterface
}

func NewRenewalReminderHandler(s service.ServiceInterface) *RenewalReminderHandler {
	return &RenewalReminderHandler{membershipService: s}
}

func (h *RenewalReminderHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Running renewal reminder sweep")

	if err := h.membershipService.SendRenewalReminders(ctx); err != nil {
		log.Error().Err(err).Msg("Renewal reminder sweep failed")
		return fmt.Errorf("reminder sweep: %w", err)
	}
	return nil
}

// GraceSweepHandler suspend memberships có grace window đã đóng
type GraceSweepHandler struct {
	membershipService service.ServiceInterface
}

func NewGraceSweepHandler(s service.ServiceInterface) *GraceSweepHandler {
	return &GraceSweepHandler{membershipService: s}
}

func (h *GraceSweepHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Running grace period sweep")

	if err := h.membershipService.ProcessGracePeriodExpirations(ctx); err != nil {
		log.Error().Err(err).Msg("Grace period sweep failed")
		return fmt.Errorf("grace sweep: %w", err)
	}
	return nil
}
