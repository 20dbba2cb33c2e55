package shared

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// EnqueueEmail đẩy một email task vào queue default. Caller quyết định
// fail thì làm gì; mọi domain service hiện tại chỉ log (best-effort).
func EnqueueEmail(enqueuer TaskEnqueuer, payload EmailTaskPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	task := asynq.NewTask(TypeSendNotificationEmail, data)
	if _, err := enqueuer.Enqueue(task, asynq.Queue(QueueDefault), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	return nil
}
