package email

import (
	"context"
	"fmt"
	"net/smtp"

	"gymangel-backend/pkg/logger"
)

type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) Send(ctx context.Context, to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg)
	if err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
