package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymangel-backend/internal/shared"
)

func TestRenderNotificationAllKinds(t *testing.T) {
	ctx := map[string]string{
		"full_name":        "Nguyen Van A",
		"order_number":     "ORD-20260301-0001",
		"total":            "300000",
		"item_count":       "2",
		"plan_name":        "Gói 1 Tháng",
		"start_date":       "15/01/2026",
		"expiry_date":      "15/02/2026",
		"amount":           "500000",
		"auto_renewal":     "true",
		"grace_period_end": "23/02/2026",
	}

	kinds := []shared.NotificationKind{
		shared.NotifyOrderConfirmation,
		shared.NotifyMembershipActivated,
		shared.NotifyRenewalReminder30,
		shared.NotifyRenewalReminder14,
		shared.NotifyRenewalReminder7,
		shared.NotifyRenewalSuccess,
		shared.NotifyGracePeriodNotice,
		shared.NotifyMembershipSuspended,
	}

	for _, kind := range kinds {
		subject, body, err := RenderNotification(kind, ctx)
		require.NoError(t, err, "kind %s", kind)
		assert.NotEmpty(t, subject, "kind %s", kind)
		assert.Contains(t, body, "Nguyen Van A", "kind %s", kind)
	}
}

func TestRenderNotificationReminderAutoRenewalNote(t *testing.T) {
	on := map[string]string{"plan_name": "Gói 1 Tháng", "expiry_date": "15/02/2026", "auto_renewal": "true"}
	_, body, err := RenderNotification(shared.NotifyRenewalReminder7, on)
	require.NoError(t, err)
	assert.Contains(t, body, "tự gia hạn")

	off := map[string]string{"plan_name": "Gói 1 Tháng", "expiry_date": "15/02/2026", "auto_renewal": "false"}
	_, body, err = RenderNotification(shared.NotifyRenewalReminder7, off)
	require.NoError(t, err)
	assert.Contains(t, body, "đang tắt")
}

func TestRenderNotificationMissingName(t *testing.T) {
	_, body, err := RenderNotification(shared.NotifyMembershipSuspended, map[string]string{"plan_name": "Gói 1 Tháng"})
	require.NoError(t, err)
	assert.Contains(t, body, "Chào bạn")
}

func TestRenderNotificationUnknownKind(t *testing.T) {
	_, _, err := RenderNotification(shared.NotificationKind("not_a_kind"), nil)
	assert.Error(t, err)
}
