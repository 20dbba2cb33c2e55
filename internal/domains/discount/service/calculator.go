package service

import (
	"github.com/shopspring/decimal"

	"gymangel-backend/internal/domains/discount/model"
)

var oneHundred = decimal.NewFromInt(100)

// CalculateDiscount tính số tiền giảm cho một subtotal. Pure function, cả
// cart totals và order checkout dùng chung để hai nơi không lệch nhau.
// Kết quả round về VND nguyên và không bao giờ vượt subtotal.
func CalculateDiscount(subtotal decimal.Decimal, code *model.DiscountCode) decimal.Decimal {
	if code == nil || subtotal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch code.DiscountType {
	case model.TypePercentage:
		amount = subtotal.Mul(code.Value).Div(oneHundred)
	case model.TypeFixedAmount:
		amount = code.Value
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount.Round(0)
}
