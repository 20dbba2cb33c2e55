package model

import "errors"

const (
	ErrCodeDiscountNotFound    = "DISCOUNT_CODE_NOT_FOUND"
	ErrCodeDiscountNotYetValid = "DISCOUNT_CODE_NOT_YET_VALID"
	ErrCodeDiscountExpired     = "DISCOUNT_CODE_EXPIRED"
	ErrCodeUsageLimitReached   = "DISCOUNT_USAGE_LIMIT_REACHED"
	ErrCodeMinimumNotMet       = "DISCOUNT_MINIMUM_NOT_MET"
)

// Inactive codes trả về cùng lỗi với codes không tồn tại: client không
// phân biệt được mã bị tắt với mã chưa từng có.
var (
	ErrDiscountNotFound    = errors.New("discount code not found")
	ErrDiscountNotYetValid = errors.New("discount code is not yet valid")
	ErrDiscountExpired     = errors.New("discount code has expired")
	ErrUsageLimitReached   = errors.New("discount code usage limit reached")
	ErrMinimumNotMet       = errors.New("order subtotal below discount minimum")
)
