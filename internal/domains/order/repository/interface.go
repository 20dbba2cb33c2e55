package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gymangel-backend/internal/domains/order/model"
)

// OrderSummary là row cho list view (items đếm trong query)
type OrderSummary struct {
	Order     model.Order
	ItemCount int
}

type RepositoryInterface interface {
	// NextOrderNumberTx lấy sequence number tiếp theo cho ngày `day` qua
	// atomic upsert counter. Hai checkout đồng thời nhận số khác nhau.
	NextOrderNumberTx(ctx context.Context, tx pgx.Tx, day time.Time) (int, error)

	// CreateOrderTx ghi order + items trong transaction đang mở
	CreateOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID returns nil, nil when absent; items đính kèm
	GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)

	// ListByUser returns summaries, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderSummary, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}
