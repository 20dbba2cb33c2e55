package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product là read model của catalog. Catalog CRUD (admin) là hệ thống khác;
// phía này chỉ đọc price/stock và điều chỉnh stock khi đặt/hủy đơn.
type Product struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Price         decimal.Decimal `json:"price" db:"price"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	ImageURL      *string         `json:"image_url" db:"image_url"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
