package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUESTS
// =====================================================

type CreateOrderRequest struct {
	ReceiverName    string  `json:"receiver_name" binding:"required"`
	ReceiverPhone   string  `json:"receiver_phone" binding:"required"`
	DeliveryAddress string  `json:"delivery_address" binding:"required"`
	City            string  `json:"city" binding:"required"`
	District        string  `json:"district" binding:"required"`
	Ward            string  `json:"ward" binding:"required"`
	Notes           *string `json:"notes,omitempty"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
}

func (req CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ReceiverName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.ReceiverPhone, validation.Required, validation.Length(8, 15)),
		validation.Field(&req.DeliveryAddress, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.District, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Ward, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Notes, validation.Length(0, 500)),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(
			PaymentMethodCOD,
			PaymentMethodVNPay,
		)),
	)
}

// =====================================================
// RESPONSES
// =====================================================

type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	OrderDate       time.Time           `json:"order_date"`
	Status          string              `json:"status"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	Total           decimal.Decimal     `json:"total"`
	ReceiverName    string              `json:"receiver_name"`
	ReceiverPhone   string              `json:"receiver_phone"`
	DeliveryAddress string              `json:"delivery_address"`
	City            string              `json:"city"`
	District        string              `json:"district"`
	Ward            string              `json:"ward"`
	Notes           *string             `json:"notes,omitempty"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderSummaryResponse cho list view, không kèm items
type OrderSummaryResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber string          `json:"order_number"`
	OrderDate   time.Time       `json:"order_date"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"item_count"`
}
