package service

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// CreateOrder checkout giỏ hiện tại thành một order bất biến. Stock
	// decrement, discount usage và order insert đi chung một transaction.
	CreateOrder(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.OrderResponse, error)

	// GetOrder enforce ownership: order của người khác là Forbidden
	GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderResponse, error)

	ListOrders(ctx context.Context, userID uuid.UUID) ([]*model.OrderSummaryResponse, error)

	// CancelOrder chỉ cho phép khi order còn Pending, restore stock
	CancelOrder(ctx context.Context, orderID, userID uuid.UUID) error
}
