package shared

import "github.com/hibiken/asynq"

// Task types routed through the asynq worker
const (
	TypeSendNotificationEmail = "notify:email"

	TypeMembershipExpirySweep  = "membership:expiry_sweep"
	TypeMembershipAutoRenewals = "membership:auto_renewals"
	TypeMembershipReminders    = "membership:renewal_reminders"
	TypeMembershipGraceSweep   = "membership:grace_period_sweep"
)

// Queues theo priority (worker config map queue → weight)
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// NotificationKind chọn template cho notification email.
// Core services chỉ cung cấp kind + context, không bao giờ build markup.
type NotificationKind string

const (
	NotifyOrderConfirmation   NotificationKind = "order_confirmation"
	NotifyMembershipActivated NotificationKind = "membership_activated"
	NotifyRenewalReminder30   NotificationKind = "renewal_reminder_30"
	NotifyRenewalReminder14   NotificationKind = "renewal_reminder_14"
	NotifyRenewalReminder7    NotificationKind = "renewal_reminder_7"
	NotifyRenewalSuccess      NotificationKind = "renewal_success"
	NotifyGracePeriodNotice   NotificationKind = "grace_period_notice"
	NotifyMembershipSuspended NotificationKind = "membership_suspended"
)

// EmailTaskPayload là contract giữa domain services và email worker
type EmailTaskPayload struct {
	To      string            `json:"to"`
	Kind    NotificationKind  `json:"kind"`
	Context map[string]string `json:"context"`
}

// SweepTaskPayload - scheduled sweeps carry no parameters, nhưng giữ struct
// riêng để payload có chỗ mở rộng (vd: dry-run flag)
type SweepTaskPayload struct{}

// TaskEnqueuer là phần của *asynq.Client mà services cần.
// Tests swap bằng fake recorder.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
