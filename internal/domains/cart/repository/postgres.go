package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/cart/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	// Upsert: insert lần đầu, các lần sau chỉ touch updated_at.
	// DO UPDATE để RETURNING luôn trả về row.
	query := `
		INSERT INTO carts (id, user_id, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, discount_code_id, updated_at
	`

	cart := &model.Cart{}
	err := r.pool.QueryRow(ctx, query, uuid.New(), userID).Scan(
		&cart.ID, &cart.UserID, &cart.DiscountCodeID, &cart.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	return cart, nil
}

func (r *postgresRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, discount_code_id, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &model.Cart{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&cart.ID, &cart.UserID, &cart.DiscountCodeID, &cart.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

func (r *postgresRepository) GetItems(ctx context.Context, cartID uuid.UUID) ([]*model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []*model.CartItem
	for rows.Next() {
		item := &model.CartItem{}
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) GetItem(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, created_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	item := &model.CartItem{}
	err := r.pool.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID, &item.CartID, &item.ProductID,
		&item.Quantity, &item.UnitPrice, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) CreateItem(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return r.touchCart(ctx, item.CartID)
}

func (r *postgresRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	query := `UPDATE cart_items SET quantity = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	if _, err := r.pool.Exec(ctx, query, cartID, productID); err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return r.touchCart(ctx, cartID)
}

func (r *postgresRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := r.pool.Exec(ctx, query, cartID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return r.touchCart(ctx, cartID)
}

func (r *postgresRepository) SetDiscountCode(ctx context.Context, cartID uuid.UUID, discountCodeID *uuid.UUID) error {
	query := `UPDATE carts SET discount_code_id = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, cartID, discountCodeID); err != nil {
		return fmt.Errorf("failed to set cart discount code: %w", err)
	}
	return nil
}

func (r *postgresRepository) touchCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}
	return nil
}
