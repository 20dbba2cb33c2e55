package model

import "errors"

const ErrCodePlanNotFound = "PLAN_NOT_FOUND"

// ErrPlanNotFound covers both absent and inactive plans - một plan đã tắt
// không được subscribe nữa, client nhìn thấy cùng một lỗi.
var ErrPlanNotFound = errors.New("membership plan not found or inactive")
