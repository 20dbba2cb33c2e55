package repository

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/cart/model"
)

type RepositoryInterface interface {
	// GetOrCreateCart tạo cart row lần đầu user đụng tới giỏ. Row tồn tại
	// vĩnh viễn sau đó, clear chỉ xóa items.
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetCartByUserID returns nil, nil when the user has no cart yet
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	GetItems(ctx context.Context, cartID uuid.UUID) ([]*model.CartItem, error)

	// GetItem returns nil, nil when the product is not in the cart
	GetItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error)

	CreateItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// DeleteItem và ClearItems đều idempotent: xóa thứ không tồn tại là no-op
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// SetDiscountCode gắn/gỡ discount code (nil để gỡ)
	SetDiscountCode(ctx context.Context, cartID uuid.UUID, discountCodeID *uuid.UUID) error
}
