package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUESTS
// =====================================================

type SubscribeRequest struct {
	PlanID        string `json:"plan_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

func (req SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PlanID, validation.Required, is.UUIDv4),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(
			PaymentMethodCOD,
			PaymentMethodVNPay,
		)),
	)
}

type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (req CancelRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

// =====================================================
// RESPONSES
// =====================================================

type SubscriptionResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	PlanID        uuid.UUID       `json:"plan_id"`
	PlanName      string          `json:"plan_name"`
	StartDate     time.Time       `json:"start_date"`
	ExpiryDate    time.Time       `json:"expiry_date"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
}

type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	PlanName        string          `json:"plan_name"`
	TransactionDate time.Time       `json:"transaction_date"`
	StartDate       time.Time       `json:"start_date"`
	ExpiryDate      time.Time       `json:"expiry_date"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	Status          string          `json:"status"`
	AutoRenewal     bool            `json:"auto_renewal"`
}

type StatusResponse struct {
	HasActiveMembership bool                  `json:"has_active_membership"`
	CurrentPlanName     *string               `json:"current_plan_name,omitempty"`
	MembershipStart     *time.Time            `json:"membership_start,omitempty"`
	MembershipExpiry    *time.Time            `json:"membership_expiry,omitempty"`
	DaysRemaining       *int                  `json:"days_remaining,omitempty"`
	AutoRenewal         bool                  `json:"auto_renewal"`
	InGracePeriod       bool                  `json:"in_grace_period"`
	History             []TransactionResponse `json:"history"`
}
