package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymangel-backend/internal/domains/order/model"
)

const orderColumns = `
	id, order_number, user_id, order_date, status,
	subtotal, discount_amount, total,
	receiver_name, receiver_phone, delivery_address, city, district, ward, notes,
	payment_method, payment_status, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) NextOrderNumberTx(ctx context.Context, tx pgx.Tx, day time.Time) (int, error) {
	// Counter row per ngày. ON CONFLICT tuần tự hoá các checkout cùng ngày
	// trên row lock, mỗi transaction nhận một seq riêng.
	query := `
		INSERT INTO order_counters (day, seq)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET seq = order_counters.seq + 1
		RETURNING seq
	`

	var seq int
	if err := tx.QueryRow(ctx, query, day).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to get next order number: %w", err)
	}
	return seq, nil
}

func (r *postgresRepository) CreateOrderTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.OrderNumber, order.UserID, order.OrderDate, order.Status,
		order.Subtotal, order.DiscountAmount, order.Total,
		order.ReceiverName, order.ReceiverPhone, order.DeliveryAddress,
		order.City, order.District, order.Ward, order.Notes,
		order.PaymentMethod, order.PaymentStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range order.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	order := &model.Order{}
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&order.ID, &order.OrderNumber, &order.UserID, &order.OrderDate, &order.Status,
		&order.Subtotal, &order.DiscountAmount, &order.Total,
		&order.ReceiverName, &order.ReceiverPhone, &order.DeliveryAddress,
		&order.City, &order.District, &order.Ward, &order.Notes,
		&order.PaymentMethod, &order.PaymentStatus, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.getItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *postgresRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderSummary, error) {
	query := `
		SELECT o.id, o.order_number, o.order_date, o.status, o.total,
		       COUNT(oi.id) AS item_count
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.order_date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var summaries []*OrderSummary
	for rows.Next() {
		s := &OrderSummary{}
		if err := rows.Scan(
			&s.Order.ID, &s.Order.OrderNumber, &s.Order.OrderDate,
			&s.Order.Status, &s.Order.Total, &s.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}
