package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gymangel-backend/internal/infrastructure/email"
	"gymangel-backend/internal/shared"
)

// EmailHandler nhận notify:email tasks, render template và gửi qua SMTP
type EmailHandler struct {
	emailService email.EmailService
}

func NewEmailHandler(emailService email.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

func (h *EmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.EmailTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal email payload")
		// Payload hỏng thì retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	subject, body, err := email.RenderNotification(payload.Kind, payload.Context)
	if err != nil {
		log.Error().Err(err).Str("kind", string(payload.Kind)).Msg("Failed to render notification")
		return fmt.Errorf("render notification: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.emailService.Send(ctx, payload.To, subject, body); err != nil {
		log.Error().
			Err(err).
			Str("to", payload.To).
			Str("kind", string(payload.Kind)).
			Msg("Failed to send notification email")
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().
		Str("to", payload.To).
		Str("kind", string(payload.Kind)).
		Msg("Notification email sent")
	return nil
}
