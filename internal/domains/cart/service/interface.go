package service

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*model.CartResponse, error)

	// AddItem cộng dồn quantity khi sản phẩm đã có trong giỏ. Stock check
	// tính trên TỔNG sau khi cộng, không phải phần thêm vào.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartResponse, error)

	// UpdateItem set quantity tuyệt đối
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartResponse, error)

	// RemoveItem idempotent
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartResponse, error)

	Clear(ctx context.Context, userID uuid.UUID) error

	// Sync merge guest cart vào server cart sau login. Lossy có chủ đích:
	// sản phẩm biến mất và quantity vượt stock bị bỏ qua không báo lỗi.
	Sync(ctx context.Context, userID uuid.UUID, items []model.SyncItem) (*model.CartResponse, error)
}
