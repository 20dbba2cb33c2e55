package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"gymangel-backend/internal/shared"
	"gymangel-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddress, redisPassword string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterMembershipSweeps đăng ký bốn sweep daily. Thứ tự giờ chạy có chủ
// đích: expiry sweep trước grace sweep (record vào grace hôm nay không bị
// suspend cùng ngày), auto-renewal chạy sau để khỏi đụng batch expiry,
// reminders gửi giờ sáng.
func (s *Scheduler) RegisterMembershipSweeps() error {
	sweeps := []struct {
		taskType string
		cron     string
		desc     string
	}{
		{shared.TypeMembershipExpirySweep, "30 0 * * *", "expiry sweep: daily at 00:30 UTC"},
		{shared.TypeMembershipGraceSweep, "0 1 * * *", "grace period sweep: daily at 01:00 UTC"},
		{shared.TypeMembershipAutoRenewals, "0 2 * * *", "auto-renewal sweep: daily at 02:00 UTC"},
		{shared.TypeMembershipReminders, "0 8 * * *", "renewal reminders: daily at 08:00 UTC"},
	}

	for _, sweep := range sweeps {
		payload, err := json.Marshal(shared.SweepTaskPayload{})
		if err != nil {
			return err
		}

		_, err = s.scheduler.Register(
			sweep.cron,
			asynq.NewTask(sweep.taskType, payload),
			asynq.Queue(shared.QueueHigh),
			asynq.MaxRetry(2),
			asynq.Timeout(15*time.Minute),
		)
		if err != nil {
			logger.Error("Failed to register "+sweep.taskType, err)
			return err
		}

		logger.Info("✓ Registered "+sweep.desc, map[string]interface{}{})
	}

	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
