package service

import (
	"gymangel-backend/internal/shared"
	"gymangel-backend/pkg/logger"
)

// notify enqueue một email task cho worker render và gửi. Notification là
// best-effort: enqueue fail chỉ log, không bao giờ fail business operation.
func (s *MembershipService) notify(to string, kind shared.NotificationKind, context map[string]string) {
	if s.enqueuer == nil || to == "" {
		return
	}

	err := shared.EnqueueEmail(s.enqueuer, shared.EmailTaskPayload{
		To:      to,
		Kind:    kind,
		Context: context,
	})
	if err != nil {
		logger.Error("failed to enqueue notification email", err)
	}
}
