package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hibiken/asynq"
)

// GetEnvVariable lấy environment variable với fallback default value
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// UnmarshalTask decode asynq task payload vào dest
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}

// AddMonthsClamped cộng calendar months và clamp về ngày cuối tháng khi
// tháng đích ngắn hơn. Khác với time.AddDate (normalize tràn sang tháng sau):
//
//	2026-01-31 + 1 tháng = 2026-02-28 (không phải 2026-03-03)
//	2026-01-15 + 1 tháng = 2026-02-15
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	// Cộng months vào month-index rồi chuẩn hóa year/month
	m := int(month) + months
	y := year + (m-1)/12
	m = (m-1)%12 + 1
	if m <= 0 {
		m += 12
		y--
	}

	// Clamp day về ngày cuối của tháng đích
	if last := daysInMonth(y, time.Month(m)); day > last {
		day = last
	}

	return time.Date(y, time.Month(m), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Ngày 0 của tháng sau = ngày cuối của tháng này
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly truncate về 00:00:00 UTC - mọi so sánh theo ngày của sweeps dùng hàm này
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
