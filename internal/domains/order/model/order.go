package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Payment methods
const (
	PaymentMethodCOD   = "COD"
	PaymentMethodVNPay = "VNPay"
)

// Payment statuses
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

// Order là record bất biến của một lần checkout. Mọi con số (giá, discount,
// totals) snapshot tại thời điểm đặt, không bao giờ tính lại từ catalog.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderNumber     string          `json:"order_number" db:"order_number"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	OrderDate       time.Time       `json:"order_date" db:"order_date"`
	Status          string          `json:"status" db:"status"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	Total           decimal.Decimal `json:"total" db:"total"`
	ReceiverName    string          `json:"receiver_name" db:"receiver_name"`
	ReceiverPhone   string          `json:"receiver_phone" db:"receiver_phone"`
	DeliveryAddress string          `json:"delivery_address" db:"delivery_address"`
	City            string          `json:"city" db:"city"`
	District        string          `json:"district" db:"district"`
	Ward            string          `json:"ward" db:"ward"`
	Notes           *string         `json:"notes" db:"notes"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	PaymentStatus   string          `json:"payment_status" db:"payment_status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	Items []OrderItem `json:"items" db:"-"`
}

// OrderItem snapshot cả tên sản phẩm: catalog đổi tên sau này không làm
// lịch sử đơn hàng đổi theo.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID   uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
}
