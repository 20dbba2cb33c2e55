package service

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/membership/model"
)

// ServiceInterface là membership lifecycle engine: user-facing operations
// cộng với bốn sweep entry points mà scheduler gọi độc lập (mỗi sweep
// idempotent và tự nuốt lỗi per-record).
type ServiceInterface interface {
	Subscribe(ctx context.Context, userID, planID uuid.UUID, paymentMethod string) (*model.SubscriptionResponse, error)
	Renew(ctx context.Context, userID, planID uuid.UUID) (*model.SubscriptionResponse, error)
	GetStatus(ctx context.Context, userID uuid.UUID) (*model.StatusResponse, error)

	EnableAutoRenewal(ctx context.Context, userID uuid.UUID) error
	DisableAutoRenewal(ctx context.Context, userID uuid.UUID) error
	Cancel(ctx context.Context, userID uuid.UUID, reason *string) error

	// AttemptRenewal là path auto-renewal: chain newStart = old expiry.
	// Lỗi propagate lên caller (sweep log per-record), nhưng attempt counter
	// đã persist trước đó thì không rollback.
	AttemptRenewal(ctx context.Context, transactionID uuid.UUID) (*model.SubscriptionResponse, error)

	// ReconcileProjection rebuild user projection từ ledger (projection là
	// cache có thể repair, không phải source of truth thứ hai)
	ReconcileProjection(ctx context.Context, userID uuid.UUID) error

	// Background sweeps - chạy daily, an toàn khi re-run
	CheckAndUpdateExpiredMemberships(ctx context.Context) error
	ProcessAutoRenewals(ctx context.Context) error
	SendRenewalReminders(ctx context.Context) error
	ProcessGracePeriodExpirations(ctx context.Context) error
}
