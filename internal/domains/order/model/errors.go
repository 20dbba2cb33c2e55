package model

import "errors"

const (
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeOrderForbidden      = "ORDER_FORBIDDEN"
	ErrCodeOrderNotCancellable = "ORDER_NOT_CANCELLABLE"
	ErrCodeEmptyCart           = "EMPTY_CART"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderForbidden      = errors.New("order belongs to another user")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
	ErrEmptyCart           = errors.New("cart is empty")
)
