package main

import (
	"github.com/hibiken/asynq"

	membershipJob "gymangel-backend/internal/domains/membership/job"
	"gymangel-backend/internal/infrastructure/email"
	emailJob "gymangel-backend/internal/infrastructure/email/job"
	"gymangel-backend/internal/shared"
	"gymangel-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Notification
	sendEmail *emailJob.EmailHandler

	// Membership sweeps
	expirySweep     *membershipJob.ExpirySweepHandler
	autoRenewal     *membershipJob.AutoRenewalHandler
	renewalReminder *membershipJob.RenewalReminderHandler
	graceSweep      *membershipJob.GraceSweepHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)

	return &HandlerRegistry{
		sendEmail: emailJob.NewEmailHandler(emailSvc),

		expirySweep:     membershipJob.NewExpirySweepHandler(c.MembershipService),
		autoRenewal:     membershipJob.NewAutoRenewalHandler(c.MembershipService),
		renewalReminder: membershipJob.NewRenewalReminderHandler(c.MembershipService),
		graceSweep:      membershipJob.NewGraceSweepHandler(c.MembershipService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Notification tasks
	mux.HandleFunc(shared.TypeSendNotificationEmail, h.sendEmail.ProcessTask)

	// Membership sweeps
	mux.HandleFunc(shared.TypeMembershipExpirySweep, h.expirySweep.ProcessTask)
	mux.HandleFunc(shared.TypeMembershipAutoRenewals, h.autoRenewal.ProcessTask)
	mux.HandleFunc(shared.TypeMembershipReminders, h.renewalReminder.ProcessTask)
	mux.HandleFunc(shared.TypeMembershipGraceSweep, h.graceSweep.ProcessTask)
}
