package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart được tạo lazily ở lần đụng đầu tiên và không bao giờ xóa row;
// "empty cart" nghĩa là không còn items. DiscountCodeID chỉ là association,
// số tiền giảm luôn tính lại lúc đọc và lúc checkout.
type Cart struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	DiscountCodeID *uuid.UUID `json:"discount_code_id" db:"discount_code_id"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// CartItem - một row per (cart, product). UnitPrice là giá lúc thêm vào giỏ,
// dùng cho hiển thị; order snapshot lại giá hiện hành lúc checkout.
type CartItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CartID    uuid.UUID       `json:"cart_id" db:"cart_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
