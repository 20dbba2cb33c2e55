package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount types
const (
	TypePercentage  = "Percentage"
	TypeFixedAmount = "FixedAmount"
)

// DiscountCode - định nghĩa mã giảm giá. UsedCount chỉ tăng lúc order
// được tạo thành công, không phải lúc apply vào cart.
type DiscountCode struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	Code               string           `json:"code" db:"code"`
	DiscountType       string           `json:"discount_type" db:"discount_type"`
	Value              decimal.Decimal  `json:"value" db:"value"`
	ValidFrom          time.Time        `json:"valid_from" db:"valid_from"`
	ValidUntil         time.Time        `json:"valid_until" db:"valid_until"`
	IsActive           bool             `json:"is_active" db:"is_active"`
	UsageLimit         *int             `json:"usage_limit" db:"usage_limit"`
	UsedCount          int              `json:"used_count" db:"used_count"`
	MinimumOrderAmount *decimal.Decimal `json:"minimum_order_amount" db:"minimum_order_amount"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
}
