package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MembershipPlan - catalog entry. Ledger rows copy price tại thời điểm
// subscribe, nên edit plan không làm sai lịch sử billing.
type MembershipPlan struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	Name           string           `json:"name" db:"name"`
	Description    string           `json:"description" db:"description"`
	DurationMonths int              `json:"duration_months" db:"duration_months"`
	Price          decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice  *decimal.Decimal `json:"original_price" db:"original_price"`
	IsPopular      bool             `json:"is_popular" db:"is_popular"`
	IsActive       bool             `json:"is_active" db:"is_active"`
	Features       []string         `json:"features" db:"features"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}
