package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartModel "gymangel-backend/internal/domains/cart/model"
	discountModel "gymangel-backend/internal/domains/discount/model"
	"gymangel-backend/internal/domains/order/model"
	"gymangel-backend/internal/domains/order/repository"
	productModel "gymangel-backend/internal/domains/product/model"
)

// CreateOrder cần một transaction thật trên pgx pool nên checkout path
// được cover bằng integration tests; ở đây test các path còn lại.

type fakeOrderRepo struct {
	orders map[uuid.UUID]*model.Order
}

func (r *fakeOrderRepo) NextOrderNumberTx(_ context.Context, _ pgx.Tx, _ time.Time) (int, error) {
	return 1, nil
}

func (r *fakeOrderRepo) CreateOrderTx(_ context.Context, _ pgx.Tx, order *model.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*repository.OrderSummary, error) {
	var result []*repository.OrderSummary
	for _, o := range r.orders {
		if o.UserID == userID {
			result = append(result, &repository.OrderSummary{Order: *o, ItemCount: len(o.Items)})
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return model.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*productModel.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*productModel.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) DecrementStockTx(_ context.Context, _ pgx.Tx, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return productModel.ErrProductNotFound
	}
	if p.StockQuantity < qty {
		return productModel.ErrInsufficientStock
	}
	p.StockQuantity -= qty
	return nil
}

func (r *fakeProductRepo) RestoreStock(_ context.Context, id uuid.UUID, qty int) error {
	if p, ok := r.products[id]; ok {
		p.StockQuantity += qty
	}
	return nil
}

type fakeCartRepo struct {
	cart  *cartModel.Cart
	items []*cartModel.CartItem
}

func (r *fakeCartRepo) GetOrCreateCart(_ context.Context, userID uuid.UUID) (*cartModel.Cart, error) {
	if r.cart == nil {
		r.cart = &cartModel.Cart{ID: uuid.New(), UserID: userID}
	}
	return r.cart, nil
}

func (r *fakeCartRepo) GetCartByUserID(_ context.Context, _ uuid.UUID) (*cartModel.Cart, error) {
	return r.cart, nil
}

func (r *fakeCartRepo) GetItems(_ context.Context, _ uuid.UUID) ([]*cartModel.CartItem, error) {
	return r.items, nil
}

func (r *fakeCartRepo) GetItem(_ context.Context, _, productID uuid.UUID) (*cartModel.CartItem, error) {
	for _, item := range r.items {
		if item.ProductID == productID {
			return item, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) CreateItem(_ context.Context, item *cartModel.CartItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (r *fakeCartRepo) ClearItems(_ context.Context, _ uuid.UUID) error {
	r.items = nil
	return nil
}

func (r *fakeCartRepo) SetDiscountCode(_ context.Context, _ uuid.UUID, discountCodeID *uuid.UUID) error {
	r.cart.DiscountCodeID = discountCodeID
	return nil
}

type fakeDiscountRepo struct {
	codes map[uuid.UUID]*discountModel.DiscountCode
}

func (r *fakeDiscountRepo) GetByCode(_ context.Context, code string) (*discountModel.DiscountCode, error) {
	for _, c := range r.codes {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id uuid.UUID) (*discountModel.DiscountCode, error) {
	return r.codes[id], nil
}

func (r *fakeDiscountRepo) IncrementUsageTx(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if c, ok := r.codes[id]; ok {
		c.UsedCount++
	}
	return nil
}

type orderFixture struct {
	svc       *OrderService
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	carts     *fakeCartRepo
	discounts *fakeDiscountRepo

	userID    uuid.UUID
	productID uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orders:    &fakeOrderRepo{orders: map[uuid.UUID]*model.Order{}},
		products:  &fakeProductRepo{products: map[uuid.UUID]*productModel.Product{}},
		carts:     &fakeCartRepo{},
		discounts: &fakeDiscountRepo{codes: map[uuid.UUID]*discountModel.DiscountCode{}},
		userID:    uuid.New(),
		productID: uuid.New(),
	}
	f.products.products[f.productID] = &productModel.Product{
		ID:            f.productID,
		Name:          "Găng tay tập gym",
		Price:         decimal.NewFromInt(150_000),
		StockQuantity: 5,
	}
	f.svc = &OrderService{
		repository:   f.orders,
		cartRepo:     f.carts,
		productRepo:  f.products,
		discountRepo: f.discounts,
		now:          func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
	}
	return f
}

func (f *orderFixture) seedOrder(status string) *model.Order {
	order := &model.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260301-0001",
		UserID:      f.userID,
		OrderDate:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:      status,
		Subtotal:    decimal.NewFromInt(300_000),
		Total:       decimal.NewFromInt(300_000),
		Items: []model.OrderItem{{
			ID:          uuid.New(),
			ProductID:   f.productID,
			ProductName: "Găng tay tập gym",
			Quantity:    2,
			UnitPrice:   decimal.NewFromInt(150_000),
		}},
	}
	f.orders.orders[order.ID] = order
	return order
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	req := &model.CreateOrderRequest{
		ReceiverName:    "Nguyen Van A",
		ReceiverPhone:   "0901234567",
		DeliveryAddress: "12 Nguyễn Huệ",
		City:            "Hồ Chí Minh",
		PaymentMethod:   model.PaymentMethodCOD,
	}

	// User chưa từng có cart row
	_, err := f.svc.CreateOrder(context.Background(), f.userID, req)
	assert.ErrorIs(t, err, model.ErrEmptyCart)

	// Cart row tồn tại nhưng rỗng
	f.carts.cart = &cartModel.Cart{ID: uuid.New(), UserID: f.userID}
	_, err = f.svc.CreateOrder(context.Background(), f.userID, req)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestAssembleOrderKeepsCartUnitPrice(t *testing.T) {
	f := newOrderFixture(t)
	cart := &cartModel.Cart{ID: uuid.New(), UserID: f.userID}
	items := []*cartModel.CartItem{{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: f.productID,
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(150_000),
	}}

	// Catalog tăng giá SAU khi user đã add vào giỏ
	f.products.products[f.productID].Price = decimal.NewFromInt(200_000)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	order, codeID, err := f.svc.assembleOrder(context.Background(), f.userID, cart, items, &model.CreateOrderRequest{}, now)
	require.NoError(t, err)
	assert.Nil(t, codeID)

	// Order giữ đúng con số user thấy trên giỏ, không reprice
	assert.True(t, decimal.NewFromInt(300_000).Equal(order.Subtotal), "subtotal %s", order.Subtotal)
	assert.True(t, decimal.NewFromInt(300_000).Equal(order.Total))
	require.Len(t, order.Items, 1)
	assert.True(t, decimal.NewFromInt(150_000).Equal(order.Items[0].UnitPrice))
	assert.Equal(t, "Găng tay tập gym", order.Items[0].ProductName)
}

func TestAssembleOrderRecomputesDiscount(t *testing.T) {
	f := newOrderFixture(t)

	code := &discountModel.DiscountCode{
		ID:           uuid.New(),
		Code:         "GYM10",
		DiscountType: discountModel.TypePercentage,
		Value:        decimal.NewFromInt(10),
		IsActive:     true,
	}
	f.discounts.codes[code.ID] = code

	cart := &cartModel.Cart{ID: uuid.New(), UserID: f.userID, DiscountCodeID: &code.ID}
	items := []*cartModel.CartItem{{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: f.productID,
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(150_000),
	}}

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	order, codeID, err := f.svc.assembleOrder(context.Background(), f.userID, cart, items, &model.CreateOrderRequest{}, now)
	require.NoError(t, err)

	require.NotNil(t, codeID)
	assert.Equal(t, code.ID, *codeID)
	assert.True(t, decimal.NewFromInt(30_000).Equal(order.DiscountAmount), "discount %s", order.DiscountAmount)
	assert.True(t, decimal.NewFromInt(270_000).Equal(order.Total))
}

func TestAssembleOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(t)
	cart := &cartModel.Cart{ID: uuid.New(), UserID: f.userID}
	items := []*cartModel.CartItem{{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: uuid.New(),
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(150_000),
	}}

	_, _, err := f.svc.assembleOrder(context.Background(), f.userID, cart, items, &model.CreateOrderRequest{}, time.Now())
	assert.ErrorIs(t, err, productModel.ErrProductNotFound)
}

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20260301-0007", formatOrderNumber(day, 7))
	assert.Equal(t, "ORD-20260301-0042", formatOrderNumber(day, 42))
}

func TestGetOrderOwnership(t *testing.T) {
	f := newOrderFixture(t)
	order := f.seedOrder(model.StatusPending)

	resp, err := f.svc.GetOrder(context.Background(), order.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260301-0001", resp.OrderNumber)
	assert.Len(t, resp.Items, 1)
	assert.True(t, decimal.NewFromInt(300_000).Equal(resp.Items[0].LineTotal))

	_, err = f.svc.GetOrder(context.Background(), order.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrOrderForbidden)

	_, err = f.svc.GetOrder(context.Background(), uuid.New(), f.userID)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(model.StatusPending)
	f.seedOrder(model.StatusDelivered)

	result, err := f.svc.ListOrders(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, 1, result[0].ItemCount)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := newOrderFixture(t)
	order := f.seedOrder(model.StatusPending)
	f.products.products[f.productID].StockQuantity = 3 // sau khi order trừ 2

	require.NoError(t, f.svc.CancelOrder(context.Background(), order.ID, f.userID))

	assert.Equal(t, model.StatusCancelled, f.orders.orders[order.ID].Status)
	assert.Equal(t, 5, f.products.products[f.productID].StockQuantity)
}

func TestCancelOrderOnlyPending(t *testing.T) {
	f := newOrderFixture(t)

	for _, status := range []string{
		model.StatusProcessing,
		model.StatusShipped,
		model.StatusDelivered,
		model.StatusCancelled,
	} {
		order := f.seedOrder(status)
		err := f.svc.CancelOrder(context.Background(), order.ID, f.userID)
		assert.ErrorIs(t, err, model.ErrOrderNotCancellable, "status %s", status)
	}
}

func TestCancelOrderForbidden(t *testing.T) {
	f := newOrderFixture(t)
	order := f.seedOrder(model.StatusPending)

	err := f.svc.CancelOrder(context.Background(), order.ID, uuid.New())
	assert.ErrorIs(t, err, model.ErrOrderForbidden)
	assert.Equal(t, model.StatusPending, f.orders.orders[order.ID].Status)
}
