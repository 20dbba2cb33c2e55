package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymangel-backend/internal/domains/discount/model"
	"gymangel-backend/internal/domains/discount/service"
	"gymangel-backend/internal/shared/middleware"
	"gymangel-backend/internal/shared/response"
)

type DiscountHandler struct {
	service service.ServiceInterface
}

func NewDiscountHandler(s service.ServiceInterface) *DiscountHandler {
	return &DiscountHandler{service: s}
}

// ApplyCode - POST /api/v1/cart/discount
func (h *DiscountHandler) ApplyCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.ApplyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	result, err := h.service.ApplyCode(c.Request.Context(), userID, req.Code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RemoveCode - DELETE /api/v1/cart/discount
func (h *DiscountHandler) RemoveCode(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.RemoveCode(c.Request.Context(), userID); err != nil {
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *DiscountHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrDiscountNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeDiscountNotFound, err.Error())
	case errors.Is(err, model.ErrDiscountNotYetValid):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeDiscountNotYetValid, err.Error())
	case errors.Is(err, model.ErrDiscountExpired):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeDiscountExpired, err.Error())
	case errors.Is(err, model.ErrUsageLimitReached):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeUsageLimitReached, err.Error())
	case errors.Is(err, model.ErrMinimumNotMet):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeMinimumNotMet, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
