package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gymangel-backend/internal/domains/product/model"
)

type RepositoryInterface interface {
	// GetByID returns nil, nil when the product does not exist
	GetByID(ctx context.Context, productID uuid.UUID) (*model.Product, error)

	// DecrementStockTx giảm stock trong transaction đang mở với conditional
	// update (stock >= quantity). Returns ErrInsufficientStock khi guard fail,
	// nên hai request tranh nhau cùng một sản phẩm không thể oversell.
	DecrementStockTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error

	// RestoreStock trả lại stock (order cancellation)
	RestoreStock(ctx context.Context, productID uuid.UUID, quantity int) error
}
