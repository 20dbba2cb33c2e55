package service

import (
	"context"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/discount/model"
)

type ServiceInterface interface {
	// ApplyCode validate mã và gắn vào cart của user. Không tăng used_count;
	// usage chỉ tính khi order được tạo.
	ApplyCode(ctx context.Context, userID uuid.UUID, code string) (*model.ApplyCodeResponse, error)

	// RemoveCode gỡ mã khỏi cart, idempotent
	RemoveCode(ctx context.Context, userID uuid.UUID) error
}
