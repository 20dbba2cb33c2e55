package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/product/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, name, price, stock_quantity, image_url, created_at
		FROM products
		WHERE id = $1
	`

	var product model.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.StockQuantity,
		&product.ImageURL,
		&product.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *postgresRepository) DecrementStockTx(ctx context.Context, tx pgx.Tx, productID uuid.UUID, quantity int) error {
	// Conditional update: chỉ trừ khi còn đủ hàng. RowsAffected = 0 nghĩa là
	// một request khác đã lấy mất stock giữa lúc check và lúc ghi.
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2
		WHERE id = $1 AND stock_quantity >= $2
	`

	tag, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInsufficientStock
	}
	return nil
}

func (r *postgresRepository) RestoreStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	return nil
}
