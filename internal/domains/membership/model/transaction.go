package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lifecycle status của một ledger entry.
// Active → Renewed | Expired | Cancelled; Active --(hết grace)--> Suspended.
// Renewed/Expired/Cancelled/Suspended là terminal - sweeps không đụng lại.
const (
	StatusActive    = "Active"
	StatusRenewed   = "Renewed"
	StatusExpired   = "Expired"
	StatusCancelled = "Cancelled"
	StatusSuspended = "Suspended"
)

const (
	PaymentMethodCOD   = "COD"
	PaymentMethodVNPay = "VNPay"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// MembershipTransaction là một billing period trong ledger. Ledger là
// append-mostly: renewal tạo row MỚI và đánh dấu row cũ Renewed, giữ nguyên
// toàn bộ lịch sử billing. Amount copy từ plan tại thời điểm subscribe.
type MembershipTransaction struct {
	ID     uuid.UUID `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`
	PlanID uuid.UUID `json:"plan_id" db:"plan_id"`

	TransactionDate time.Time `json:"transaction_date" db:"transaction_date"`
	StartDate       time.Time `json:"start_date" db:"start_date"`
	ExpiryDate      time.Time `json:"expiry_date" db:"expiry_date"`

	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	PaymentStatus string          `json:"payment_status" db:"payment_status"`
	Status        string          `json:"status" db:"status"`

	// Auto-renewal tracking
	AutoRenewal        bool       `json:"auto_renewal" db:"auto_renewal"`
	RenewalAttempts    int        `json:"renewal_attempts" db:"renewal_attempts"`
	NextRenewalDate    *time.Time `json:"next_renewal_date" db:"next_renewal_date"`
	LastRenewalAttempt *time.Time `json:"last_renewal_attempt" db:"last_renewal_attempt"`

	// Cancellation
	CancellationDate   *time.Time `json:"cancellation_date" db:"cancellation_date"`
	CancellationReason *string    `json:"cancellation_reason" db:"cancellation_reason"`

	// Grace period: cửa sổ sau expiry mà member vẫn còn access, chờ renewal
	GracePeriodStart *time.Time `json:"grace_period_start" db:"grace_period_start"`
	GracePeriodEnd   *time.Time `json:"grace_period_end" db:"grace_period_end"`
	IsInGracePeriod  bool       `json:"is_in_grace_period" db:"is_in_grace_period"`
}
