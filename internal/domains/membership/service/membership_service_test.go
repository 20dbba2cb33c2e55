package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymangel-backend/internal/config"
	"gymangel-backend/internal/domains/membership/model"
	planModel "gymangel-backend/internal/domains/plan/model"
	userModel "gymangel-backend/internal/domains/user/model"
	"gymangel-backend/internal/shared"
)

// =====================================================
// FAKES
// =====================================================

type fakeMembershipRepo struct {
	transactions map[uuid.UUID]*model.MembershipTransaction

	failCreate bool
	failUpdate bool
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{transactions: map[uuid.UUID]*model.MembershipTransaction{}}
}

func (r *fakeMembershipRepo) CreateTransaction(_ context.Context, tx *model.MembershipTransaction) error {
	if r.failCreate {
		return errors.New("create failed")
	}
	clone := *tx
	r.transactions[tx.ID] = &clone
	return nil
}

func (r *fakeMembershipRepo) UpdateTransaction(_ context.Context, tx *model.MembershipTransaction) error {
	if r.failUpdate {
		return errors.New("update failed")
	}
	if _, ok := r.transactions[tx.ID]; !ok {
		return model.ErrTransactionNotFound
	}
	clone := *tx
	r.transactions[tx.ID] = &clone
	return nil
}

func (r *fakeMembershipRepo) GetTransactionByID(_ context.Context, id uuid.UUID) (*model.MembershipTransaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	clone := *tx
	return &clone, nil
}

func (r *fakeMembershipRepo) GetActiveTransaction(_ context.Context, userID uuid.UUID) (*model.MembershipTransaction, error) {
	var latest *model.MembershipTransaction
	for _, tx := range r.transactions {
		if tx.UserID != userID || tx.Status != model.StatusActive {
			continue
		}
		if latest == nil || tx.TransactionDate.After(latest.TransactionDate) {
			latest = tx
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeMembershipRepo) GetUserTransactions(_ context.Context, userID uuid.UUID) ([]*model.MembershipTransaction, error) {
	var result []*model.MembershipTransaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			clone := *tx
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeMembershipRepo) GetTransactionsForRenewal(_ context.Context, renewalDate time.Time) ([]*model.MembershipTransaction, error) {
	var result []*model.MembershipTransaction
	for _, tx := range r.transactions {
		if tx.Status == model.StatusActive && tx.AutoRenewal && sameDay(tx.ExpiryDate, renewalDate) {
			clone := *tx
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeMembershipRepo) GetTransactionsExpiringOn(_ context.Context, targetDate time.Time) ([]*model.MembershipTransaction, error) {
	var result []*model.MembershipTransaction
	for _, tx := range r.transactions {
		if tx.Status == model.StatusActive && sameDay(tx.ExpiryDate, targetDate) {
			clone := *tx
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeMembershipRepo) GetGracePeriodExpirations(_ context.Context, today time.Time) ([]*model.MembershipTransaction, error) {
	var result []*model.MembershipTransaction
	for _, tx := range r.transactions {
		if tx.IsInGracePeriod && tx.GracePeriodEnd != nil && !tx.GracePeriodEnd.After(today) {
			clone := *tx
			result = append(result, &clone)
		}
	}
	return result, nil
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Truncate(24*time.Hour) == b.UTC().Truncate(24*time.Hour)
}

type fakePlanRepo struct {
	plans map[uuid.UUID]*planModel.MembershipPlan
}

func (r *fakePlanRepo) GetActivePlans(_ context.Context) ([]*planModel.MembershipPlan, error) {
	var result []*planModel.MembershipPlan
	for _, p := range r.plans {
		if p.IsActive {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id uuid.UUID) (*planModel.MembershipPlan, error) {
	return r.plans[id], nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*userModel.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*userModel.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) UpdateMembership(_ context.Context, userID uuid.UUID, has bool, start, expiry *time.Time) error {
	user, ok := r.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	user.HasMembership = has
	user.MembershipStart = start
	user.MembershipExpiry = expiry
	return nil
}

func (r *fakeUserRepo) GetExpiredMembershipUsers(_ context.Context, today time.Time) ([]*userModel.User, error) {
	var result []*userModel.User
	for _, u := range r.users {
		if u.HasMembership && u.MembershipExpiry != nil && u.MembershipExpiry.Before(today) {
			result = append(result, u)
		}
	}
	return result, nil
}

type fakeEnqueuer struct {
	tasks []shared.EmailTaskPayload
}

func (e *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	var payload shared.EmailTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return nil, err
	}
	e.tasks = append(e.tasks, payload)
	return &asynq.TaskInfo{}, nil
}

func (e *fakeEnqueuer) kinds() []shared.NotificationKind {
	var kinds []shared.NotificationKind
	for _, t := range e.tasks {
		kinds = append(kinds, t.Kind)
	}
	return kinds
}

// =====================================================
// FIXTURE
// =====================================================

type fixture struct {
	svc      *MembershipService
	repo     *fakeMembershipRepo
	plans    *fakePlanRepo
	users    *fakeUserRepo
	enqueuer *fakeEnqueuer

	userID uuid.UUID
	planID uuid.UUID
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		repo:     newFakeMembershipRepo(),
		plans:    &fakePlanRepo{plans: map[uuid.UUID]*planModel.MembershipPlan{}},
		users:    &fakeUserRepo{users: map[uuid.UUID]*userModel.User{}},
		enqueuer: &fakeEnqueuer{},
		userID:   uuid.New(),
		planID:   uuid.New(),
	}

	f.plans.plans[f.planID] = &planModel.MembershipPlan{
		ID:             f.planID,
		Name:           "Gói 1 Tháng",
		DurationMonths: 1,
		Price:          decimal.NewFromInt(500_000),
		IsActive:       true,
	}
	f.users.users[f.userID] = &userModel.User{
		ID:       f.userID,
		Email:    "member@example.com",
		FullName: "Nguyen Van A",
	}

	cfg := config.MembershipConfig{
		RenewalLeadDays: 3,
		GracePeriodDays: 7,
		ReminderDays:    []int{30, 14, 7},
	}

	f.svc = &MembershipService{
		repository: f.repo,
		planRepo:   f.plans,
		userRepo:   f.users,
		enqueuer:   f.enqueuer,
		cfg:        cfg,
		now:        func() time.Time { return now },
	}
	return f
}

func (f *fixture) activeTransaction(t *testing.T) *model.MembershipTransaction {
	t.Helper()
	tx, err := f.repo.GetActiveTransaction(context.Background(), f.userID)
	require.NoError(t, err)
	require.NotNil(t, tx)
	return tx
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// =====================================================
// SUBSCRIBE / RENEW
// =====================================================

func TestSubscribe(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	f := newFixture(t, now)

	resp, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	assert.Equal(t, now, resp.StartDate)
	assert.Equal(t, time.Date(2026, 2, 15, 10, 30, 0, 0, time.UTC), resp.ExpiryDate)
	assert.Equal(t, model.StatusActive, resp.Status)

	tx := f.activeTransaction(t)
	assert.True(t, tx.AutoRenewal)
	assert.Equal(t, model.PaymentStatusPending, tx.PaymentStatus)
	require.NotNil(t, tx.NextRenewalDate)
	assert.Equal(t, resp.ExpiryDate.AddDate(0, 0, -3), *tx.NextRenewalDate)

	user := f.users.users[f.userID]
	assert.True(t, user.HasMembership)
	require.NotNil(t, user.MembershipExpiry)
	assert.Equal(t, resp.ExpiryDate, *user.MembershipExpiry)

	assert.Contains(t, f.enqueuer.kinds(), shared.NotifyMembershipActivated)
}

func TestSubscribeClampsMonthEnd(t *testing.T) {
	now := date(2026, 1, 31)
	f := newFixture(t, now)

	resp, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodVNPay)
	require.NoError(t, err)

	// Jan 31 + 1 tháng = Feb 28 (2026 không nhuận)
	assert.Equal(t, date(2026, 2, 28), resp.ExpiryDate)
}

func TestSubscribeInactivePlan(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))
	f.plans.plans[f.planID].IsActive = false

	_, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	assert.ErrorIs(t, err, planModel.ErrPlanNotFound)
}

func TestSubscribeUnknownUser(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	_, err := f.svc.Subscribe(context.Background(), uuid.New(), f.planID, model.PaymentMethodCOD)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestSubscribeSupersedesActive(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	first, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	_, err = f.svc.Renew(context.Background(), f.userID, f.planID)
	require.NoError(t, err)

	// Tối đa một Active per user: entry đầu phải thành Renewed
	old, err := f.repo.GetTransactionByID(context.Background(), first.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRenewed, old.Status)

	active := f.activeTransaction(t)
	assert.NotEqual(t, first.TransactionID, active.ID)
}

// =====================================================
// ATTEMPT RENEWAL (auto path)
// =====================================================

func TestAttemptRenewalChainsFromExpiry(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	// Sweep chạy 2026-02-12, trước expiry 3 ngày
	f.svc.now = func() time.Time { return date(2026, 2, 12) }

	resp, err := f.svc.AttemptRenewal(context.Background(), sub.TransactionID)
	require.NoError(t, err)

	// Chain: period mới nối liền expiry cũ, không phải từ hôm nay
	assert.Equal(t, sub.ExpiryDate, resp.StartDate)
	assert.Equal(t, date(2026, 3, 15), resp.ExpiryDate)

	old, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRenewed, old.Status)
	assert.Equal(t, 1, old.RenewalAttempts)

	assert.Contains(t, f.enqueuer.kinds(), shared.NotifyRenewalSuccess)
}

func TestAttemptRenewalPersistsCounterOnFailure(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	f.repo.failCreate = true
	_, err = f.svc.AttemptRenewal(context.Background(), sub.TransactionID)
	require.Error(t, err)

	// Counter đã ghi TRƯỚC khi attempt fail
	tx, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.RenewalAttempts)
	assert.NotNil(t, tx.LastRenewalAttempt)
	assert.Equal(t, model.StatusActive, tx.Status)
}

func TestAttemptRenewalUnknownTransaction(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	_, err := f.svc.AttemptRenewal(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrTransactionNotFound)
}

// =====================================================
// AUTO-RENEWAL TOGGLE / CANCEL
// =====================================================

func TestAutoRenewalToggle(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	assert.ErrorIs(t, f.svc.EnableAutoRenewal(context.Background(), f.userID), model.ErrNoActiveMembership)

	_, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	require.NoError(t, f.svc.DisableAutoRenewal(context.Background(), f.userID))
	tx := f.activeTransaction(t)
	assert.False(t, tx.AutoRenewal)
	assert.Nil(t, tx.NextRenewalDate)

	require.NoError(t, f.svc.EnableAutoRenewal(context.Background(), f.userID))
	tx = f.activeTransaction(t)
	assert.True(t, tx.AutoRenewal)
	assert.NotNil(t, tx.NextRenewalDate)
}

func TestCancelKeepsAccessUntilExpiry(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	reason := "chuyển nhà"
	require.NoError(t, f.svc.Cancel(context.Background(), f.userID, &reason))

	tx, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, tx.Status)
	assert.False(t, tx.AutoRenewal)
	require.NotNil(t, tx.CancellationReason)
	assert.Equal(t, reason, *tx.CancellationReason)

	// Projection giữ nguyên: access đến expiry tự nhiên
	assert.True(t, f.users.users[f.userID].HasMembership)
}

// =====================================================
// SWEEPS
// =====================================================

func TestExpirySweepExpiresWithoutGrace(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	// Ngày sau expiry, chưa từng có renewal attempt
	f.svc.now = func() time.Time { return date(2026, 2, 16) }
	require.NoError(t, f.svc.CheckAndUpdateExpiredMemberships(context.Background()))

	user := f.users.users[f.userID]
	assert.False(t, user.HasMembership)
	assert.NotNil(t, user.MembershipExpiry, "historical dates preserved")

	tx, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusExpired, tx.Status)
}

func TestExpirySweepEntersGraceAfterFailedRenewal(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	// Auto-renewal đã thử và fail
	f.repo.failCreate = true
	f.svc.now = func() time.Time { return date(2026, 2, 12) }
	_, err = f.svc.AttemptRenewal(context.Background(), sub.TransactionID)
	require.Error(t, err)
	f.repo.failCreate = false

	f.svc.now = func() time.Time { return date(2026, 2, 16) }
	require.NoError(t, f.svc.CheckAndUpdateExpiredMemberships(context.Background()))

	tx, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.True(t, tx.IsInGracePeriod)
	assert.Equal(t, model.StatusActive, tx.Status, "grace giữ status Active")
	require.NotNil(t, tx.GracePeriodEnd)
	assert.Equal(t, date(2026, 2, 23), *tx.GracePeriodEnd)

	// Access giữ nguyên trong grace window
	assert.True(t, f.users.users[f.userID].HasMembership)
	assert.Contains(t, f.enqueuer.kinds(), shared.NotifyGracePeriodNotice)

	// Idempotent: chạy lại không đổi gì, không gửi thêm notice
	notices := len(f.enqueuer.tasks)
	require.NoError(t, f.svc.CheckAndUpdateExpiredMemberships(context.Background()))
	assert.Len(t, f.enqueuer.tasks, notices)
}

func TestProcessAutoRenewals(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	// 2026-02-12: expiry (02-15) cách đúng RenewalLeadDays
	f.svc.now = func() time.Time { return date(2026, 2, 12) }
	require.NoError(t, f.svc.ProcessAutoRenewals(context.Background()))

	old, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRenewed, old.Status)

	active := f.activeTransaction(t)
	assert.Equal(t, date(2026, 3, 15), active.ExpiryDate)
}

func TestProcessAutoRenewalsSkipsDisabled(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	_, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)
	require.NoError(t, f.svc.DisableAutoRenewal(context.Background(), f.userID))

	f.svc.now = func() time.Time { return date(2026, 2, 12) }
	require.NoError(t, f.svc.ProcessAutoRenewals(context.Background()))

	active := f.activeTransaction(t)
	assert.Equal(t, date(2026, 2, 15), active.ExpiryDate, "không renew khi auto-renewal tắt")
}

func TestSendRenewalReminders(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	_, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	cases := []struct {
		name string
		now  time.Time
		kind shared.NotificationKind
	}{
		{"7 days before", date(2026, 2, 8), shared.NotifyRenewalReminder7},
		{"14 days before", date(2026, 2, 1), shared.NotifyRenewalReminder14},
		{"30 days before", date(2026, 1, 16), shared.NotifyRenewalReminder30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f.enqueuer.tasks = nil
			f.svc.now = func() time.Time { return tc.now }
			require.NoError(t, f.svc.SendRenewalReminders(context.Background()))
			assert.Equal(t, []shared.NotificationKind{tc.kind}, f.enqueuer.kinds())
		})
	}

	// Ngày không trùng mốc nào: im lặng
	f.enqueuer.tasks = nil
	f.svc.now = func() time.Time { return date(2026, 2, 3) }
	require.NoError(t, f.svc.SendRenewalReminders(context.Background()))
	assert.Empty(t, f.enqueuer.tasks)
}

func TestGracePeriodSweepSuspends(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	// Đưa vào grace: failed attempt + expiry sweep
	f.repo.failCreate = true
	f.svc.now = func() time.Time { return date(2026, 2, 12) }
	_, _ = f.svc.AttemptRenewal(context.Background(), sub.TransactionID)
	f.repo.failCreate = false

	f.svc.now = func() time.Time { return date(2026, 2, 16) }
	require.NoError(t, f.svc.CheckAndUpdateExpiredMemberships(context.Background()))

	// Grace hết hạn 02-23; sweep ngày 24 suspend
	f.svc.now = func() time.Time { return date(2026, 2, 24) }
	require.NoError(t, f.svc.ProcessGracePeriodExpirations(context.Background()))

	tx, err := f.repo.GetTransactionByID(context.Background(), sub.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuspended, tx.Status)
	assert.False(t, tx.IsInGracePeriod)

	assert.False(t, f.users.users[f.userID].HasMembership)
	assert.Contains(t, f.enqueuer.kinds(), shared.NotifyMembershipSuspended)
}

// =====================================================
// STATUS / RECONCILE
// =====================================================

func TestGetStatus(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	_, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	f.svc.now = func() time.Time { return date(2026, 2, 5) }
	status, err := f.svc.GetStatus(context.Background(), f.userID)
	require.NoError(t, err)

	assert.True(t, status.HasActiveMembership)
	assert.True(t, status.AutoRenewal)
	require.NotNil(t, status.DaysRemaining)
	assert.Equal(t, 10, *status.DaysRemaining)
	require.NotNil(t, status.CurrentPlanName)
	assert.Equal(t, "Gói 1 Tháng", *status.CurrentPlanName)
	assert.Len(t, status.History, 1)
}

func TestReconcileProjection(t *testing.T) {
	f := newFixture(t, date(2026, 1, 15))

	sub, err := f.svc.Subscribe(context.Background(), f.userID, f.planID, model.PaymentMethodCOD)
	require.NoError(t, err)

	// Giả lập projection lệch
	f.users.users[f.userID].HasMembership = false
	f.users.users[f.userID].MembershipExpiry = nil

	require.NoError(t, f.svc.ReconcileProjection(context.Background(), f.userID))

	user := f.users.users[f.userID]
	assert.True(t, user.HasMembership)
	require.NotNil(t, user.MembershipExpiry)
	assert.Equal(t, sub.ExpiryDate, *user.MembershipExpiry)
}
