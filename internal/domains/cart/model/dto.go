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

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

func (req AddItemRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ProductID, validation.Required, is.UUIDv4),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(999)),
	)
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (req UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(999)),
	)
}

// SyncRequest là guest cart từ client sau khi login
type SyncRequest struct {
	Items []SyncItem `json:"items"`
}

type SyncItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (req SyncRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Items, validation.Each(validation.By(func(value interface{}) error {
			item, _ := value.(SyncItem)
			return validation.ValidateStruct(&item,
				validation.Field(&item.ProductID, validation.Required, is.UUIDv4),
				validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
			)
		}))),
	)
}

// =====================================================
// RESPONSES
// =====================================================

type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountCode   *string            `json:"discount_code,omitempty"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Total          decimal.Decimal    `json:"total"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
