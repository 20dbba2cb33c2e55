package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type ApplyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

func (req ApplyCodeRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Code, validation.Required, validation.Length(1, 50)),
	)
}

type ApplyCodeResponse struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
}
