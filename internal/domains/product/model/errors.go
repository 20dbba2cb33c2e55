package model

import "errors"

const (
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
