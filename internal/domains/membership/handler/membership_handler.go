package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gymangel-backend/internal/domains/membership/model"
	"gymangel-backend/internal/domains/membership/service"
	planModel "gymangel-backend/internal/domains/plan/model"
	"gymangel-backend/internal/shared/middleware"
	"gymangel-backend/internal/shared/response"
)

type MembershipHandler struct {
	service service.ServiceInterface
}

func NewMembershipHandler(s service.ServiceInterface) *MembershipHandler {
	return &MembershipHandler{service: s}
}

// Subscribe - POST /api/v1/memberships/subscribe
func (h *MembershipHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		response.BadRequest(c, "invalid plan id")
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), userID, planID, req.PaymentMethod)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Renew - POST /api/v1/memberships/renew
func (h *MembershipHandler) Renew(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req struct {
		PlanID string `json:"plan_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		response.BadRequest(c, "invalid plan id")
		return
	}

	result, err := h.service.Renew(c.Request.Context(), userID, planID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetStatus - GET /api/v1/memberships/status
func (h *MembershipHandler) GetStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	result, err := h.service.GetStatus(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// EnableAutoRenewal - PUT /api/v1/memberships/auto-renewal/enable
func (h *MembershipHandler) EnableAutoRenewal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.EnableAutoRenewal(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"auto_renewal": true})
}

// DisableAutoRenewal - PUT /api/v1/memberships/auto-renewal/disable
func (h *MembershipHandler) DisableAutoRenewal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.DisableAutoRenewal(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"auto_renewal": false})
}

// Cancel - POST /api/v1/memberships/cancel
func (h *MembershipHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	// Body optional: cancel không bắt buộc reason
	var req model.CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
			return
		}
	}

	if err := h.service.Cancel(c.Request.Context(), userID, req.Reason); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": model.StatusCancelled})
}

// Reconcile - POST /api/v1/memberships/reconcile
// Rebuild projection từ ledger rồi trả status mới. Repair endpoint cho
// trường hợp projection lệch (partial failure trong subscribe/sweep).
func (h *MembershipHandler) Reconcile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.ReconcileProjection(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	result, err := h.service.GetStatus(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *MembershipHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planModel.ErrPlanNotFound):
		response.ErrorResponse(c, http.StatusNotFound, planModel.ErrCodePlanNotFound, err.Error())
	case errors.Is(err, model.ErrUserNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeUserNotFound, err.Error())
	case errors.Is(err, model.ErrNoActiveMembership):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeNoActiveMembership, err.Error())
	case errors.Is(err, model.ErrTransactionNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeTransactionNotFound, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
