package service

import (
	"context"
	"fmt"

	"gymangel-backend/internal/domains/membership/model"
	userModel "gymangel-backend/internal/domains/user/model"
	"gymangel-backend/internal/shared"
	"gymangel-backend/internal/shared/utils"
	"gymangel-backend/pkg/logger"
)

// Các sweep dưới đây chạy daily qua scheduler và phải:
//   - idempotent: chạy lại ngay sau đó không tạo thêm thay đổi
//   - cô lập lỗi per-record: một record hỏng không chặn cả batch

// CheckAndUpdateExpiredMemberships thu hồi access của users có projection
// hết hạn (has_membership=true, expiry < today). Entry Active chuyển
// Expired, TRỪ khi auto-renewal bật và đã có ít nhất một attempt fail -
// trường hợp đó mở grace window thay vì expire thẳng: member giữ access
// thêm GracePeriodDays ngày chờ renewal, rồi grace sweep mới suspend.
func (s *MembershipService) CheckAndUpdateExpiredMemberships(ctx context.Context) error {
	today := utils.DateOnly(s.now())

	users, err := s.userRepo.GetExpiredMembershipUsers(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to find expired memberships: %w", err)
	}

	processed := 0
	for _, user := range users {
		if err := s.expireMembership(ctx, user); err != nil {
			logger.Error("expiry sweep: failed to process user "+user.ID.String(), err)
			continue
		}
		processed++
	}

	logger.Info("expiry sweep completed", map[string]interface{}{
		"candidates": len(users),
		"processed":  processed,
	})
	return nil
}

func (s *MembershipService) expireMembership(ctx context.Context, user *userModel.User) error {
	transaction, err := s.repository.GetActiveTransaction(ctx, user.ID)
	if err != nil {
		return err
	}

	// Đã trong grace window rồi thì để grace sweep xử lý tiếp
	if transaction != nil && transaction.IsInGracePeriod {
		return nil
	}

	if transaction != nil && transaction.AutoRenewal && transaction.RenewalAttempts > 0 {
		return s.enterGracePeriod(ctx, user, transaction)
	}

	// Expire thẳng: projection flip false (giữ dates làm lịch sử),
	// entry Active -> Expired
	if err := s.userRepo.UpdateMembership(ctx, user.ID, false, user.MembershipStart, user.MembershipExpiry); err != nil {
		return err
	}

	if transaction != nil {
		transaction.Status = model.StatusExpired
		if err := s.repository.UpdateTransaction(ctx, transaction); err != nil {
			return err
		}
	}

	return nil
}

// enterGracePeriod mở grace window cho entry mà auto-renewal đã thử và fail.
// Status giữ Active, projection giữ nguyên access.
func (s *MembershipService) enterGracePeriod(ctx context.Context, user *userModel.User, transaction *model.MembershipTransaction) error {
	now := s.now().UTC()
	graceEnd := utils.DateOnly(now).AddDate(0, 0, s.cfg.GracePeriodDays)

	transaction.IsInGracePeriod = true
	transaction.GracePeriodStart = &now
	transaction.GracePeriodEnd = &graceEnd

	if err := s.repository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	s.notify(user.Email, shared.NotifyGracePeriodNotice, map[string]string{
		"full_name":        user.FullName,
		"grace_period_end": graceEnd.Format("2006-01-02"),
	})

	logger.Info("membership entered grace period", map[string]interface{}{
		"user_id":          user.ID,
		"transaction_id":   transaction.ID,
		"grace_period_end": graceEnd,
	})
	return nil
}

// ProcessAutoRenewals tìm các entry Active có auto-renewal bật và expiry
// đúng RenewalLeadDays ngày nữa, rồi gọi AttemptRenewal cho từng entry.
// Lỗi per-transaction được log và nuốt để batch chạy hết.
func (s *MembershipService) ProcessAutoRenewals(ctx context.Context) error {
	renewalDate := utils.DateOnly(s.now()).AddDate(0, 0, s.cfg.RenewalLeadDays)

	transactions, err := s.repository.GetTransactionsForRenewal(ctx, renewalDate)
	if err != nil {
		return fmt.Errorf("failed to find transactions for renewal: %w", err)
	}

	renewed := 0
	for _, transaction := range transactions {
		if !transaction.AutoRenewal {
			continue
		}

		if _, err := s.AttemptRenewal(ctx, transaction.ID); err != nil {
			logger.Error("auto-renewal failed for transaction "+transaction.ID.String(), err)
			continue
		}
		renewed++
	}

	logger.Info("auto-renewal sweep completed", map[string]interface{}{
		"eligible": len(transactions),
		"renewed":  renewed,
	})
	return nil
}

// SendRenewalReminders gửi reminder ở các mốc cấu hình (mặc định 30/14/7
// ngày trước expiry). Match expiry đúng NGÀY, không phải <=, nên mỗi mốc
// chỉ bắn một lần khi ngày lăn qua.
func (s *MembershipService) SendRenewalReminders(ctx context.Context) error {
	today := utils.DateOnly(s.now())

	for _, days := range s.cfg.ReminderDays {
		targetDate := today.AddDate(0, 0, days)

		transactions, err := s.repository.GetTransactionsExpiringOn(ctx, targetDate)
		if err != nil {
			logger.Error(fmt.Sprintf("reminder sweep: query failed for %d-day threshold", days), err)
			continue
		}

		for _, transaction := range transactions {
			if transaction.Status != model.StatusActive {
				continue
			}
			if err := s.sendReminder(ctx, transaction, days); err != nil {
				logger.Error("reminder sweep: failed for transaction "+transaction.ID.String(), err)
			}
		}
	}

	return nil
}

func (s *MembershipService) sendReminder(ctx context.Context, transaction *model.MembershipTransaction, daysBeforeExpiry int) error {
	user, err := s.userRepo.GetByID(ctx, transaction.UserID)
	if err != nil {
		return err
	}
	if user == nil || user.Email == "" {
		return nil
	}

	plan, err := s.planRepo.GetByID(ctx, transaction.PlanID)
	if err != nil {
		return err
	}
	if plan == nil {
		return nil
	}

	var kind shared.NotificationKind
	switch daysBeforeExpiry {
	case 30:
		kind = shared.NotifyRenewalReminder30
	case 14:
		kind = shared.NotifyRenewalReminder14
	case 7:
		kind = shared.NotifyRenewalReminder7
	default:
		return nil
	}

	s.notify(user.Email, kind, map[string]string{
		"full_name":    user.FullName,
		"plan_name":    plan.Name,
		"expiry_date":  transaction.ExpiryDate.Format("2006-01-02"),
		"amount":       plan.Price.StringFixed(0),
		"auto_renewal": fmt.Sprintf("%t", transaction.AutoRenewal),
	})
	return nil
}

// ProcessGracePeriodExpirations suspend các membership mà grace window đã
// đóng: projection flip false, entry -> Suspended, grace flag clear.
func (s *MembershipService) ProcessGracePeriodExpirations(ctx context.Context) error {
	today := utils.DateOnly(s.now())

	transactions, err := s.repository.GetGracePeriodExpirations(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to find grace period expirations: %w", err)
	}

	for _, transaction := range transactions {
		if err := s.suspendMembership(ctx, transaction); err != nil {
			logger.Error("grace sweep: failed for transaction "+transaction.ID.String(), err)
			continue
		}
	}

	logger.Info("grace period sweep completed", map[string]interface{}{
		"suspended": len(transactions),
	})
	return nil
}

func (s *MembershipService) suspendMembership(ctx context.Context, transaction *model.MembershipTransaction) error {
	user, err := s.userRepo.GetByID(ctx, transaction.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err := s.userRepo.UpdateMembership(ctx, user.ID, false, user.MembershipStart, user.MembershipExpiry); err != nil {
		return err
	}

	transaction.Status = model.StatusSuspended
	transaction.IsInGracePeriod = false
	if err := s.repository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	planName := "Membership"
	if plan, err := s.planRepo.GetByID(ctx, transaction.PlanID); err == nil && plan != nil {
		planName = plan.Name
	}

	s.notify(user.Email, shared.NotifyMembershipSuspended, map[string]string{
		"full_name": user.FullName,
		"plan_name": planName,
	})
	return nil
}
