package cache

import (
	"context"
	"time"
)

// Cache định nghĩa contract cho cache layer.
// Cho phép swap implementation (Redis, in-memory) mà không sửa service code.
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest.
	// found = false nghĩa là cache miss, dest không bị thay đổi.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping kiểm tra connection.
	Ping(ctx context.Context) error
}
