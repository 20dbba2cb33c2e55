package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartRepo "gymangel-backend/internal/domains/cart/repository"
	"gymangel-backend/internal/domains/discount/model"
	"gymangel-backend/internal/domains/discount/repository"
)

type DiscountService struct {
	repository repository.RepositoryInterface
	cartRepo   cartRepo.RepositoryInterface

	now func() time.Time
}

func NewDiscountService(r repository.RepositoryInterface, carts cartRepo.RepositoryInterface) ServiceInterface {
	return &DiscountService{
		repository: r,
		cartRepo:   carts,
		now:        time.Now,
	}
}

// ApplyCode chạy validation chain theo thứ tự cố định: existence/active,
// validity window, usage limit, minimum subtotal. Lỗi đầu tiên thắng.
func (s *DiscountService) ApplyCode(ctx context.Context, userID uuid.UUID, codeStr string) (*model.ApplyCodeResponse, error) {
	// Step 1: Load cart + subtotal hiện tại
	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	items, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Step 2: Lookup code
	code, err := s.repository.GetByCode(ctx, codeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to load discount code: %w", err)
	}
	if code == nil || !code.IsActive {
		return nil, model.ErrDiscountNotFound
	}

	// Step 3: Validity window
	now := s.now().UTC()
	if now.Before(code.ValidFrom) {
		return nil, model.ErrDiscountNotYetValid
	}
	if now.After(code.ValidUntil) {
		return nil, model.ErrDiscountExpired
	}

	// Step 4: Usage limit (soft check; checkout re-checks atomically)
	if code.UsageLimit != nil && code.UsedCount >= *code.UsageLimit {
		return nil, model.ErrUsageLimitReached
	}

	// Step 5: Minimum order amount
	if code.MinimumOrderAmount != nil && subtotal.LessThan(*code.MinimumOrderAmount) {
		return nil, model.ErrMinimumNotMet
	}

	// Step 6: Associate code với cart
	if err := s.cartRepo.SetDiscountCode(ctx, cart.ID, &code.ID); err != nil {
		return nil, fmt.Errorf("failed to apply discount code: %w", err)
	}

	discountAmount := CalculateDiscount(subtotal, code)
	return &model.ApplyCodeResponse{
		Code:           code.Code,
		DiscountType:   code.DiscountType,
		DiscountAmount: discountAmount,
		Subtotal:       subtotal,
		Total:          subtotal.Sub(discountAmount),
	}, nil
}

func (s *DiscountService) RemoveCode(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil || cart.DiscountCodeID == nil {
		return nil
	}
	return s.cartRepo.SetDiscountCode(ctx, cart.ID, nil)
}
