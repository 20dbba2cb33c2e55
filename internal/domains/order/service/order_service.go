package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	cartModel "gymangel-backend/internal/domains/cart/model"
	cartRepo "gymangel-backend/internal/domains/cart/repository"
	discountRepo "gymangel-backend/internal/domains/discount/repository"
	discountService "gymangel-backend/internal/domains/discount/service"
	"gymangel-backend/internal/domains/order/model"
	"gymangel-backend/internal/domains/order/repository"
	productModel "gymangel-backend/internal/domains/product/model"
	productRepo "gymangel-backend/internal/domains/product/repository"
	userRepo "gymangel-backend/internal/domains/user/repository"
	"gymangel-backend/internal/shared"
	"gymangel-backend/internal/shared/utils"
	"gymangel-backend/pkg/database"
	"gymangel-backend/pkg/logger"
)

type OrderService struct {
	pool         *pgxpool.Pool
	repository   repository.RepositoryInterface
	cartRepo     cartRepo.RepositoryInterface
	productRepo  productRepo.RepositoryInterface
	discountRepo discountRepo.RepositoryInterface
	userRepo     userRepo.RepositoryInterface
	enqueuer     shared.TaskEnqueuer

	now func() time.Time
}

func NewOrderService(
	pool *pgxpool.Pool,
	r repository.RepositoryInterface,
	carts cartRepo.RepositoryInterface,
	products productRepo.RepositoryInterface,
	discounts discountRepo.RepositoryInterface,
	users userRepo.RepositoryInterface,
	enqueuer shared.TaskEnqueuer,
) ServiceInterface {
	return &OrderService{
		pool:         pool,
		repository:   r,
		cartRepo:     carts,
		productRepo:  products,
		discountRepo: discounts,
		userRepo:     users,
		enqueuer:     enqueuer,
		now:          time.Now,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	// Step 1: Load cart, empty cart là lỗi
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrEmptyCart
	}

	cartItems, err := s.cartRepo.GetItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, model.ErrEmptyCart
	}

	// Step 2: Snapshot cart thành order (giá đã chốt lúc add vào giỏ)
	now := s.now().UTC()
	order, discountCodeID, err := s.assembleOrder(ctx, userID, cart, cartItems, req, now)
	if err != nil {
		return nil, err
	}

	// Step 3: Transaction - order number, discount usage, stock, insert.
	// Bất kỳ bước nào fail thì cả checkout rollback, stock không mất.
	err = database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		seq, err := s.repository.NextOrderNumberTx(ctx, tx, utils.DateOnly(now))
		if err != nil {
			return err
		}
		order.OrderNumber = formatOrderNumber(now, seq)

		if discountCodeID != nil {
			if err := s.discountRepo.IncrementUsageTx(ctx, tx, *discountCodeID); err != nil {
				return err
			}
		}

		for _, item := range order.Items {
			if err := s.productRepo.DecrementStockTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return s.repository.CreateOrderTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	// Step 4: Clear cart SAU khi order đã commit. Clear fail chỉ log,
	// order đã tồn tại hợp lệ.
	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		logger.Error("failed to clear cart after checkout", err)
	}
	if cart.DiscountCodeID != nil {
		if err := s.cartRepo.SetDiscountCode(ctx, cart.ID, nil); err != nil {
			logger.Error("failed to detach discount code after checkout", err)
		}
	}

	// Step 5: Best-effort confirmation email
	s.sendConfirmation(ctx, order)

	return toOrderResponse(order), nil
}

// assembleOrder dựng order chưa có số từ cart snapshot. Unit price lấy từ
// line đã chốt lúc thêm vào giỏ, KHÔNG reprice theo catalog, nên total khớp
// đúng con số user thấy trên giỏ; catalog chỉ cung cấp tên sản phẩm.
// Trả về discount code id đang áp (nếu còn tồn tại) cho transaction increment.
func (s *OrderService) assembleOrder(
	ctx context.Context,
	userID uuid.UUID,
	cart *cartModel.Cart,
	cartItems []*cartModel.CartItem,
	req *model.CreateOrderRequest,
	now time.Time,
) (*model.Order, *uuid.UUID, error) {
	orderID := uuid.New()
	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(cartItems))

	for _, cartItem := range cartItems {
		product, err := s.productRepo.GetByID(ctx, cartItem.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil {
			return nil, nil, productModel.ErrProductNotFound
		}

		lineTotal := cartItem.UnitPrice.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
		subtotal = subtotal.Add(lineTotal)

		items = append(items, model.OrderItem{
			ID:          uuid.New(),
			OrderID:     orderID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    cartItem.Quantity,
			UnitPrice:   cartItem.UnitPrice,
		})
	}

	// Recompute discount từ code đang gắn trên cart
	discountAmount := decimal.Zero
	var discountCodeID *uuid.UUID
	if cart.DiscountCodeID != nil {
		code, err := s.discountRepo.GetByID(ctx, *cart.DiscountCodeID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load discount code: %w", err)
		}
		if code != nil {
			discountAmount = discountService.CalculateDiscount(subtotal, code)
			discountCodeID = &code.ID
		}
	}

	return &model.Order{
		ID:              orderID,
		UserID:          userID,
		OrderDate:       now,
		Status:          model.StatusPending,
		Subtotal:        subtotal,
		DiscountAmount:  discountAmount,
		Total:           subtotal.Sub(discountAmount),
		ReceiverName:    req.ReceiverName,
		ReceiverPhone:   req.ReceiverPhone,
		DeliveryAddress: req.DeliveryAddress,
		City:            req.City,
		District:        req.District,
		Ward:            req.Ward,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		Items:           items,
	}, discountCodeID, nil
}

// Sequence reset theo ngày (UTC), zero-pad 4 chữ số.
func formatOrderNumber(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), seq)
}

func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderResponse, error) {
	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, model.ErrOrderForbidden
	}
	return toOrderResponse(order), nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*model.OrderSummaryResponse, error) {
	summaries, err := s.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := make([]*model.OrderSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, &model.OrderSummaryResponse{
			ID:          s.Order.ID,
			OrderNumber: s.Order.OrderNumber,
			OrderDate:   s.Order.OrderDate,
			Status:      s.Order.Status,
			Total:       s.Order.Total,
			ItemCount:   s.ItemCount,
		})
	}
	return result, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) error {
	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}
	if order.UserID != userID {
		return model.ErrOrderForbidden
	}
	if order.Status != model.StatusPending {
		return model.ErrOrderNotCancellable
	}

	if err := s.repository.UpdateStatus(ctx, orderID, model.StatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	// Restore stock per item. Fail chỉ log: order đã Cancelled, stock có
	// thể sửa tay từ số liệu order items.
	for _, item := range order.Items {
		if err := s.productRepo.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("failed to restore stock for product "+item.ProductID.String(), err)
		}
	}
	return nil
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *model.Order) {
	if s.enqueuer == nil {
		return
	}

	user, err := s.userRepo.GetByID(ctx, order.UserID)
	if err != nil || user == nil || user.Email == "" {
		return
	}

	payload := shared.EmailTaskPayload{
		To:   user.Email,
		Kind: shared.NotifyOrderConfirmation,
		Context: map[string]string{
			"full_name":    user.FullName,
			"order_number": order.OrderNumber,
			"total":        order.Total.StringFixed(0),
			"item_count":   fmt.Sprintf("%d", len(order.Items)),
		},
	}
	if err := shared.EnqueueEmail(s.enqueuer, payload); err != nil {
		logger.Error("failed to enqueue order confirmation", err)
	}
}

func toOrderResponse(order *model.Order) *model.OrderResponse {
	resp := &model.OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		OrderDate:       order.OrderDate,
		Status:          order.Status,
		Subtotal:        order.Subtotal,
		DiscountAmount:  order.DiscountAmount,
		Total:           order.Total,
		ReceiverName:    order.ReceiverName,
		ReceiverPhone:   order.ReceiverPhone,
		DeliveryAddress: order.DeliveryAddress,
		City:            order.City,
		District:        order.District,
		Ward:            order.Ward,
		Notes:           order.Notes,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		Items:           make([]model.OrderItemResponse, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, model.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return resp
}
