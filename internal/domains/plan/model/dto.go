package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanResponse là DTO cho pricing page
type PlanResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	DurationMonths     int              `json:"duration_months"`
	Price              decimal.Decimal  `json:"price"`
	OriginalPrice      *decimal.Decimal `json:"original_price,omitempty"`
	DiscountPercentage *int             `json:"discount_percentage,omitempty"`
	IsPopular          bool             `json:"is_popular"`
	Features           []string         `json:"features"`
}

// ToResponse tính display discount % từ original price (nếu có và cao hơn)
func (p *MembershipPlan) ToResponse() PlanResponse {
	resp := PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		DurationMonths: p.DurationMonths,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		IsPopular:      p.IsPopular,
		Features:       p.Features,
	}

	if p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price) {
		pct := p.OriginalPrice.Sub(p.Price).
			Div(*p.OriginalPrice).
			Mul(decimal.NewFromInt(100)).
			Round(0)
		n := int(pct.IntPart())
		resp.DiscountPercentage = &n
	}

	return resp
}
