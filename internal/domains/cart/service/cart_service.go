package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gymangel-backend/internal/domains/cart/model"
	"gymangel-backend/internal/domains/cart/repository"
	discountRepo "gymangel-backend/internal/domains/discount/repository"
	discountService "gymangel-backend/internal/domains/discount/service"
	productModel "gymangel-backend/internal/domains/product/model"
	productRepo "gymangel-backend/internal/domains/product/repository"
	"gymangel-backend/pkg/logger"
)

type CartService struct {
	repository   repository.RepositoryInterface
	productRepo  productRepo.RepositoryInterface
	discountRepo discountRepo.RepositoryInterface
}

func NewCartService(
	r repository.RepositoryInterface,
	products productRepo.RepositoryInterface,
	discounts discountRepo.RepositoryInterface,
) ServiceInterface {
	return &CartService{
		repository:   r,
		productRepo:  products,
		discountRepo: discounts,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return s.buildResponse(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartResponse, error) {
	// Step 1: Validate product
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, productModel.ErrProductNotFound
	}

	cart, err := s.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	// Step 2: Merge với line hiện có, stock check trên tổng sau merge
	existing, err := s.repository.GetItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}

	newQuantity := quantity
	if existing != nil {
		newQuantity += existing.Quantity
	}
	if newQuantity > product.StockQuantity {
		return nil, productModel.ErrInsufficientStock
	}

	// Step 3: Upsert line
	if existing != nil {
		if err := s.repository.UpdateItemQuantity(ctx, existing.ID, newQuantity); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := &model.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		if err := s.repository.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	}

	return s.buildResponse(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartResponse, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, productModel.ErrProductNotFound
	}

	// Absolute quantity check, khác với AddItem (merge rồi check)
	if quantity > product.StockQuantity {
		return nil, productModel.ErrInsufficientStock
	}

	cart, err := s.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	item, err := s.repository.GetItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}
	if item == nil {
		return nil, model.ErrCartItemNotFound
	}

	if err := s.repository.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.buildResponse(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if err := s.repository.DeleteItem(ctx, cart.ID, productID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.buildResponse(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.repository.GetCartByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil
	}
	return s.repository.ClearItems(ctx, cart.ID)
}

// Sync merge guest cart. Line đã có trên server: merged qty =
// min(max(server, incoming), stock), max giữ phía nhiều hơn (user đã thêm ở
// cả hai nơi), min kẹp theo stock. Line chưa có trên server: chỉ nhận khi
// stock đủ nguyên incoming quantity, vượt stock thì drop luôn.
func (s *CartService) Sync(ctx context.Context, userID uuid.UUID, items []model.SyncItem) (*model.CartResponse, error) {
	cart, err := s.repository.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	for _, incoming := range items {
		productID, err := uuid.Parse(incoming.ProductID)
		if err != nil || incoming.Quantity < 1 {
			continue
		}

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			logger.Error("cart sync: failed to load product "+incoming.ProductID, err)
			continue
		}
		// Sản phẩm đã biến mất hoặc hết hàng: drop line, không báo lỗi
		if product == nil || product.StockQuantity < 1 {
			continue
		}

		existing, err := s.repository.GetItem(ctx, cart.ID, productID)
		if err != nil {
			logger.Error("cart sync: failed to load cart item", err)
			continue
		}

		if existing != nil {
			merged := incoming.Quantity
			if existing.Quantity > merged {
				merged = existing.Quantity
			}
			if merged > product.StockQuantity {
				merged = product.StockQuantity
			}
			if merged != existing.Quantity {
				if err := s.repository.UpdateItemQuantity(ctx, existing.ID, merged); err != nil {
					logger.Error("cart sync: failed to update cart item", err)
				}
			}
			continue
		}

		// Guest line vượt stock: skip, không clamp
		if incoming.Quantity > product.StockQuantity {
			continue
		}

		item := &model.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  incoming.Quantity,
			UnitPrice: product.Price,
		}
		if err := s.repository.CreateItem(ctx, item); err != nil {
			logger.Error("cart sync: failed to create cart item", err)
		}
	}

	return s.buildResponse(ctx, cart)
}

// buildResponse tính totals on-the-fly. Totals không bao giờ được lưu;
// discount amount tính lại mỗi lần đọc nên luôn khớp với state hiện tại.
func (s *CartService) buildResponse(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	items, err := s.repository.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}

	resp := &model.CartResponse{
		Items:          make([]model.CartItemResponse, 0, len(items)),
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		UpdatedAt:      cart.UpdatedAt,
	}

	for _, item := range items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Subtotal = resp.Subtotal.Add(lineTotal)

		itemResp := model.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: lineTotal,
		}
		if product, err := s.productRepo.GetByID(ctx, item.ProductID); err == nil && product != nil {
			itemResp.ProductName = product.Name
			itemResp.ImageURL = product.ImageURL
		}
		resp.Items = append(resp.Items, itemResp)
	}

	if cart.DiscountCodeID != nil {
		code, err := s.discountRepo.GetByID(ctx, *cart.DiscountCodeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load discount code: %w", err)
		}
		if code != nil {
			resp.DiscountCode = &code.Code
			resp.DiscountAmount = discountService.CalculateDiscount(resp.Subtotal, code)
		}
	}

	resp.Total = resp.Subtotal.Sub(resp.DiscountAmount)
	return resp, nil
}
