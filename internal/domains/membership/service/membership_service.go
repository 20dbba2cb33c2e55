package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gymangel-backend/internal/config"
	"gymangel-backend/internal/domains/membership/model"
	"gymangel-backend/internal/domains/membership/repository"
	planModel "gymangel-backend/internal/domains/plan/model"
	planRepo "gymangel-backend/internal/domains/plan/repository"
	userRepo "gymangel-backend/internal/domains/user/repository"
	"gymangel-backend/internal/shared"
	"gymangel-backend/internal/shared/utils"
)

type MembershipService struct {
	repository repository.RepositoryInterface
	planRepo   planRepo.RepositoryInterface
	userRepo   userRepo.RepositoryInterface
	enqueuer   shared.TaskEnqueuer
	cfg        config.MembershipConfig

	// now được override trong tests để pin thời gian
	now func() time.Time
}

func NewMembershipService(
	r repository.RepositoryInterface,
	plans planRepo.RepositoryInterface,
	users userRepo.RepositoryInterface,
	enqueuer shared.TaskEnqueuer,
	cfg config.MembershipConfig,
) ServiceInterface {
	return &MembershipService{
		repository: r,
		planRepo:   plans,
		userRepo:   users,
		enqueuer:   enqueuer,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Subscribe tạo ledger entry mới cho user. Payment capture nằm ngoài hệ
// thống: entry luôn bắt đầu với payment_status Pending bất kể method.
func (s *MembershipService) Subscribe(ctx context.Context, userID, planID uuid.UUID, paymentMethod string) (*model.SubscriptionResponse, error) {
	// Step 1: Validate plan
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil || !plan.IsActive {
		return nil, planModel.ErrPlanNotFound
	}

	// Step 2: Validate user
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	// Step 3: Calculate dates - calendar months, không phải 30-day blocks
	now := s.now().UTC()
	startDate := now
	expiryDate := utils.AddMonthsClamped(startDate, plan.DurationMonths)
	nextRenewal := expiryDate.AddDate(0, 0, -s.cfg.RenewalLeadDays)

	// Step 4: Supersede previous active entry, giữ invariant
	// "tối đa một Active per user". Subscribe đè lên membership đang chạy
	// (manual renew đi qua đây) nên entry cũ chuyển Renewed.
	if existing, err := s.repository.GetActiveTransaction(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to check active transaction: %w", err)
	} else if existing != nil {
		existing.Status = model.StatusRenewed
		if err := s.repository.UpdateTransaction(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to supersede active transaction: %w", err)
		}
	}

	// Step 5: Create ledger entry
	transaction := &model.MembershipTransaction{
		ID:              uuid.New(),
		UserID:          userID,
		PlanID:          plan.ID,
		TransactionDate: now,
		StartDate:       startDate,
		ExpiryDate:      expiryDate,
		Amount:          plan.Price,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.StatusActive,
		AutoRenewal:     true,
		NextRenewalDate: &nextRenewal,
	}

	if err := s.repository.CreateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	// Step 6: Update user projection
	if err := s.userRepo.UpdateMembership(ctx, userID, true, &startDate, &expiryDate); err != nil {
		return nil, fmt.Errorf("failed to update membership projection: %w", err)
	}

	// Step 7: Best-effort notification
	s.notify(user.Email, shared.NotifyMembershipActivated, map[string]string{
		"full_name":   user.FullName,
		"plan_name":   plan.Name,
		"start_date":  startDate.Format("2006-01-02"),
		"expiry_date": expiryDate.Format("2006-01-02"),
		"amount":      plan.Price.StringFixed(0),
	})

	return &model.SubscriptionResponse{
		TransactionID: transaction.ID,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		StartDate:     startDate,
		ExpiryDate:    expiryDate,
		Amount:        plan.Price,
		PaymentMethod: paymentMethod,
		Status:        model.StatusActive,
	}, nil
}

// Renew là manual renew: delegate sang Subscribe, nghĩa là period mới bắt
// đầu từ NOW chứ không chain từ expiry cũ. AttemptRenewal (auto path) thì
// chain. Hai hành vi này khác nhau có chủ đích - unify sẽ âm thầm đổi
// billing dates mà user nhìn thấy.
func (s *MembershipService) Renew(ctx context.Context, userID, planID uuid.UUID) (*model.SubscriptionResponse, error) {
	return s.Subscribe(ctx, userID, planID, model.PaymentMethodCOD)
}

// AttemptRenewal thực hiện một lần auto-renewal cho transaction.
// Attempt counter và timestamp được persist TRƯỚC khi renew logic chạy,
// để retry count chính xác kể cả khi attempt fail.
func (s *MembershipService) AttemptRenewal(ctx context.Context, transactionID uuid.UUID) (*model.SubscriptionResponse, error) {
	transaction, err := s.repository.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if transaction == nil {
		return nil, model.ErrTransactionNotFound
	}

	plan, err := s.planRepo.GetByID(ctx, transaction.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	if plan == nil {
		return nil, planModel.ErrPlanNotFound
	}

	user, err := s.userRepo.GetByID(ctx, transaction.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	// Update renewal tracking trước attempt logic - không rollback khi fail
	now := s.now().UTC()
	transaction.RenewalAttempts++
	transaction.LastRenewalAttempt = &now
	if err := s.repository.UpdateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record renewal attempt: %w", err)
	}

	// Chain dates từ expiry cũ: các period liền nhau, không gap/overlap
	// kể cả khi sweep chạy sớm/muộn vài giờ
	startDate := transaction.ExpiryDate
	expiryDate := utils.AddMonthsClamped(startDate, plan.DurationMonths)
	nextRenewal := expiryDate.AddDate(0, 0, -s.cfg.RenewalLeadDays)

	newTransaction := &model.MembershipTransaction{
		ID:              uuid.New(),
		UserID:          transaction.UserID,
		PlanID:          plan.ID,
		TransactionDate: now,
		StartDate:       startDate,
		ExpiryDate:      expiryDate,
		Amount:          plan.Price,
		PaymentMethod:   transaction.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.StatusActive,
		AutoRenewal:     true,
		NextRenewalDate: &nextRenewal,
	}

	if err := s.repository.CreateTransaction(ctx, newTransaction); err != nil {
		return nil, fmt.Errorf("failed to create renewal transaction: %w", err)
	}

	// Mark old entry as superseded
	transaction.Status = model.StatusRenewed
	if err := s.repository.UpdateTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to mark transaction renewed: %w", err)
	}

	if err := s.userRepo.UpdateMembership(ctx, transaction.UserID, true, &startDate, &expiryDate); err != nil {
		return nil, fmt.Errorf("failed to update membership projection: %w", err)
	}

	s.notify(user.Email, shared.NotifyRenewalSuccess, map[string]string{
		"full_name":   user.FullName,
		"plan_name":   plan.Name,
		"start_date":  startDate.Format("2006-01-02"),
		"expiry_date": expiryDate.Format("2006-01-02"),
		"amount":      plan.Price.StringFixed(0),
	})

	return &model.SubscriptionResponse{
		TransactionID: newTransaction.ID,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		StartDate:     startDate,
		ExpiryDate:    expiryDate,
		Amount:        plan.Price,
		PaymentMethod: newTransaction.PaymentMethod,
		Status:        model.StatusActive,
	}, nil
}

func (s *MembershipService) GetStatus(ctx context.Context, userID uuid.UUID) (*model.StatusResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	transactions, err := s.repository.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	activeTransaction, err := s.repository.GetActiveTransaction(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active transaction: %w", err)
	}

	resp := &model.StatusResponse{
		HasActiveMembership: user.HasMembership,
		MembershipStart:     user.MembershipStart,
		MembershipExpiry:    user.MembershipExpiry,
		History:             make([]model.TransactionResponse, 0, len(transactions)),
	}

	if user.HasMembership && user.MembershipExpiry != nil {
		days := int(utils.DateOnly(*user.MembershipExpiry).Sub(utils.DateOnly(s.now())).Hours() / 24)
		if days < 0 {
			days = 0
		}
		resp.DaysRemaining = &days
	}

	if activeTransaction != nil {
		resp.AutoRenewal = activeTransaction.AutoRenewal
		resp.InGracePeriod = activeTransaction.IsInGracePeriod
		if plan, err := s.planRepo.GetByID(ctx, activeTransaction.PlanID); err == nil && plan != nil {
			resp.CurrentPlanName = &plan.Name
		}
	}

	// History với plan names - lookup per distinct plan id
	planNames := map[uuid.UUID]string{}
	for _, tx := range transactions {
		name, ok := planNames[tx.PlanID]
		if !ok {
			if plan, err := s.planRepo.GetByID(ctx, tx.PlanID); err == nil && plan != nil {
				name = plan.Name
			}
			planNames[tx.PlanID] = name
		}

		resp.History = append(resp.History, model.TransactionResponse{
			ID:              tx.ID,
			PlanName:        name,
			TransactionDate: tx.TransactionDate,
			StartDate:       tx.StartDate,
			ExpiryDate:      tx.ExpiryDate,
			Amount:          tx.Amount,
			PaymentMethod:   tx.PaymentMethod,
			PaymentStatus:   tx.PaymentStatus,
			Status:          tx.Status,
			AutoRenewal:     tx.AutoRenewal,
		})
	}

	return resp, nil
}

func (s *MembershipService) EnableAutoRenewal(ctx context.Context, userID uuid.UUID) error {
	transaction, err := s.repository.GetActiveTransaction(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active transaction: %w", err)
	}
	if transaction == nil {
		return model.ErrNoActiveMembership
	}

	nextRenewal := transaction.ExpiryDate.AddDate(0, 0, -s.cfg.RenewalLeadDays)
	transaction.AutoRenewal = true
	transaction.NextRenewalDate = &nextRenewal

	return s.repository.UpdateTransaction(ctx, transaction)
}

func (s *MembershipService) DisableAutoRenewal(ctx context.Context, userID uuid.UUID) error {
	transaction, err := s.repository.GetActiveTransaction(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active transaction: %w", err)
	}
	if transaction == nil {
		return model.ErrNoActiveMembership
	}

	transaction.AutoRenewal = false
	transaction.NextRenewalDate = nil

	return s.repository.UpdateTransaction(ctx, transaction)
}

// Cancel đánh dấu entry Cancelled và tắt auto-renewal, nhưng KHÔNG đụng
// vào projection: "sẽ không renew" tách khỏi "access kết thúc ngay".
// Access giữ đến expiry tự nhiên, expiry sweep sẽ thu hồi.
func (s *MembershipService) Cancel(ctx context.Context, userID uuid.UUID, reason *string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	transaction, err := s.repository.GetActiveTransaction(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active transaction: %w", err)
	}
	if transaction == nil {
		return model.ErrNoActiveMembership
	}

	now := s.now().UTC()
	transaction.AutoRenewal = false
	transaction.NextRenewalDate = nil
	transaction.CancellationDate = &now
	transaction.CancellationReason = reason
	transaction.Status = model.StatusCancelled

	return s.repository.UpdateTransaction(ctx, transaction)
}

// ReconcileProjection rebuild projection từ ledger. Dùng khi projection
// update fail sau khi transaction đã ghi (ledger đúng, cache lệch).
func (s *MembershipService) ReconcileProjection(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	transaction, err := s.repository.GetActiveTransaction(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load active transaction: %w", err)
	}

	if transaction == nil {
		return s.userRepo.UpdateMembership(ctx, userID, false, user.MembershipStart, user.MembershipExpiry)
	}
	return s.userRepo.UpdateMembership(ctx, userID, true, &transaction.StartDate, &transaction.ExpiryDate)
}
