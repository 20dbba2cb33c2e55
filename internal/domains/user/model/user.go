package model

import (
	"time"

	"github.com/google/uuid"
)

// User - chỉ các fields mà hệ thống này cần. Identity (password, tokens,
// profile) thuộc auth service.
//
// HasMembership/MembershipStart/MembershipExpiry là projection denormalized
// từ membership ledger. Đây là cache: ledger mới là record-of-truth, và
// lifecycle engine có ReconcileProjection để rebuild khi lệch.
type User struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Email            string     `json:"email" db:"email"`
	FullName         string     `json:"full_name" db:"full_name"`
	HasMembership    bool       `json:"has_membership" db:"has_membership"`
	MembershipStart  *time.Time `json:"membership_start" db:"membership_start"`
	MembershipExpiry *time.Time `json:"membership_expiry" db:"membership_expiry"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}
