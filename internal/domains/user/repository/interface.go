package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gymangel-backend/internal/domains/user/model"
)

type RepositoryInterface interface {
	// GetByID returns nil, nil when the user does not exist
	GetByID(ctx context.Context, userID uuid.UUID) (*model.User, error)

	// UpdateMembership ghi projection fields (hasMembership + start/expiry)
	UpdateMembership(ctx context.Context, userID uuid.UUID, hasMembership bool, start, expiry *time.Time) error

	// GetExpiredMembershipUsers finds users whose projection still says
	// has_membership=true but membership_expiry < today
	GetExpiredMembershipUsers(ctx context.Context, today time.Time) ([]*model.User, error)
}
