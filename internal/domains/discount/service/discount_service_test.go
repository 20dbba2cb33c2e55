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
	"gymangel-backend/internal/domains/discount/model"
)

// =====================================================
// CALCULATOR
// =====================================================

func TestCalculateDiscount(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		dtype    string
		value    int64
		want     int64
	}{
		{"percentage 10% of 100k", 100_000, model.TypePercentage, 10, 10_000},
		{"percentage 15% of 333k", 333_000, model.TypePercentage, 15, 49_950},
		{"fixed below subtotal", 200_000, model.TypeFixedAmount, 50_000, 50_000},
		{"fixed capped at subtotal", 100_000, model.TypeFixedAmount, 150_000, 100_000},
		{"percentage of zero", 0, model.TypePercentage, 50, 0},
		{"unknown type", 100_000, "BuyOneGetOne", 10, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code := &model.DiscountCode{
				DiscountType: tc.dtype,
				Value:        decimal.NewFromInt(tc.value),
			}
			got := CalculateDiscount(decimal.NewFromInt(tc.subtotal), code)
			assert.True(t, decimal.NewFromInt(tc.want).Equal(got),
				"want %d, got %s", tc.want, got)
		})
	}
}

func TestCalculateDiscountRoundsToWholeVND(t *testing.T) {
	// 33.333 VND * 10% = 3.333,3 → round về 3.333
	code := &model.DiscountCode{
		DiscountType: model.TypePercentage,
		Value:        decimal.NewFromInt(10),
	}
	got := CalculateDiscount(decimal.NewFromInt(33_333), code)
	assert.True(t, decimal.NewFromInt(3_333).Equal(got), "got %s", got)
}

func TestCalculateDiscountNilCode(t *testing.T) {
	got := CalculateDiscount(decimal.NewFromInt(100_000), nil)
	assert.True(t, got.IsZero())
}

// =====================================================
// APPLY CODE
// =====================================================

type fakeDiscountRepo struct {
	codes map[string]*model.DiscountCode
}

func (r *fakeDiscountRepo) GetByCode(_ context.Context, code string) (*model.DiscountCode, error) {
	return r.codes[code], nil
}

func (r *fakeDiscountRepo) GetByID(_ context.Context, id uuid.UUID) (*model.DiscountCode, error) {
	for _, c := range r.codes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeDiscountRepo) IncrementUsageTx(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	for _, c := range r.codes {
		if c.ID == id {
			if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
				return model.ErrUsageLimitReached
			}
			c.UsedCount++
			return nil
		}
	}
	return model.ErrDiscountNotFound
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

func (r *fakeCartRepo) UpdateItemQuantity(_ context.Context, itemID uuid.UUID, quantity int) error {
	for _, item := range r.items {
		if item.ID == itemID {
			item.Quantity = quantity
			return nil
		}
	}
	return cartModel.ErrCartItemNotFound
}

func (r *fakeCartRepo) DeleteItem(_ context.Context, _, productID uuid.UUID) error {
	for i, item := range r.items {
		if item.ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
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

func newDiscountFixture(subtotal int64, code *model.DiscountCode, now time.Time) (*DiscountService, *fakeCartRepo) {
	carts := &fakeCartRepo{
		cart: &cartModel.Cart{ID: uuid.New(), UserID: uuid.New()},
		items: []*cartModel.CartItem{{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(subtotal),
		}},
	}

	repo := &fakeDiscountRepo{codes: map[string]*model.DiscountCode{}}
	if code != nil {
		repo.codes[code.Code] = code
	}

	svc := &DiscountService{
		repository: repo,
		cartRepo:   carts,
		now:        func() time.Time { return now },
	}
	return svc, carts
}

func validCode() *model.DiscountCode {
	return &model.DiscountCode{
		ID:           uuid.New(),
		Code:         "GYM10",
		DiscountType: model.TypePercentage,
		Value:        decimal.NewFromInt(10),
		ValidFrom:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
}

func TestApplyCode(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	code := validCode()
	svc, carts := newDiscountFixture(100_000, code, now)

	resp, err := svc.ApplyCode(context.Background(), carts.cart.UserID, "GYM10")
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(10_000).Equal(resp.DiscountAmount))
	assert.True(t, decimal.NewFromInt(90_000).Equal(resp.Total))
	require.NotNil(t, carts.cart.DiscountCodeID)
	assert.Equal(t, code.ID, *carts.cart.DiscountCodeID)
}

func TestApplyCodeValidationChain(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	limit := 5
	minAmount := decimal.NewFromInt(500_000)

	cases := []struct {
		name    string
		mutate  func(*model.DiscountCode)
		wantErr error
	}{
		{"unknown code", func(c *model.DiscountCode) { c.Code = "OTHER" }, model.ErrDiscountNotFound},
		{"inactive", func(c *model.DiscountCode) { c.IsActive = false }, model.ErrDiscountNotFound},
		{"not yet valid", func(c *model.DiscountCode) {
			c.ValidFrom = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		}, model.ErrDiscountNotYetValid},
		{"expired", func(c *model.DiscountCode) {
			c.ValidUntil = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		}, model.ErrDiscountExpired},
		{"usage limit reached", func(c *model.DiscountCode) {
			c.UsageLimit = &limit
			c.UsedCount = 5
		}, model.ErrUsageLimitReached},
		{"minimum not met", func(c *model.DiscountCode) {
			c.MinimumOrderAmount = &minAmount
		}, model.ErrMinimumNotMet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code := validCode()
			tc.mutate(code)
			svc, carts := newDiscountFixture(100_000, code, now)

			_, err := svc.ApplyCode(context.Background(), carts.cart.UserID, "GYM10")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, carts.cart.DiscountCodeID, "failed apply không đụng cart")
		})
	}
}

func TestRemoveCodeIdempotent(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	code := validCode()
	svc, carts := newDiscountFixture(100_000, code, now)

	_, err := svc.ApplyCode(context.Background(), carts.cart.UserID, "GYM10")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveCode(context.Background(), carts.cart.UserID))
	assert.Nil(t, carts.cart.DiscountCodeID)

	// Gỡ lần nữa: no-op
	require.NoError(t, svc.RemoveCode(context.Background(), carts.cart.UserID))
}
