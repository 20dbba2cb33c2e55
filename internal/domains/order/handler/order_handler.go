package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gymangel-backend/internal/domains/order/model"
	"gymangel-backend/internal/domains/order/service"
	productModel "gymangel-backend/internal/domains/product/model"
	"gymangel-backend/internal/shared/middleware"
	"gymangel-backend/internal/shared/response"
)

type OrderHandler struct {
	service service.ServiceInterface
}

func NewOrderHandler(s service.ServiceInterface) *OrderHandler {
	return &OrderHandler{service: s}
}

// CreateOrder - POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	result, err := h.service.CreateOrder(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// GetOrder - GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	result, err := h.service.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListOrders - GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	result, err := h.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// CancelOrder - POST /api/v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	if err := h.service.CancelOrder(c.Request.Context(), orderID, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": model.StatusCancelled})
}

func (h *OrderHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrEmptyCart):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeEmptyCart, err.Error())
	case errors.Is(err, model.ErrOrderNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeOrderNotFound, err.Error())
	case errors.Is(err, model.ErrOrderForbidden):
		response.ErrorResponse(c, http.StatusForbidden, model.ErrCodeOrderForbidden, err.Error())
	case errors.Is(err, model.ErrOrderNotCancellable):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, model.ErrCodeOrderNotCancellable, err.Error())
	case errors.Is(err, productModel.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, productModel.ErrCodeProductNotFound, err.Error())
	case errors.Is(err, productModel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, productModel.ErrCodeInsufficientStock, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
