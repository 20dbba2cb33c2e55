package model

import "errors"

const (
	ErrCodeUserNotFound        = "USER_NOT_FOUND"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	ErrCodeNoActiveMembership  = "NO_ACTIVE_MEMBERSHIP"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("membership transaction not found")
	ErrNoActiveMembership  = errors.New("no active membership for user")
)
