package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gymangel-backend/internal/domains/cart/model"
	"gymangel-backend/internal/domains/cart/service"
	productModel "gymangel-backend/internal/domains/product/model"
	"gymangel-backend/internal/shared/middleware"
	"gymangel-backend/internal/shared/response"
)

type CartHandler struct {
	service service.ServiceInterface
}

func NewCartHandler(s service.ServiceInterface) *CartHandler {
	return &CartHandler{service: s}
}

// GetCart - GET /api/v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	result, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AddItem - POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	result, err := h.service.AddItem(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateItem - PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, productID, req.Quantity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// RemoveItem - DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	result, err := h.service.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Clear - DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

// Sync - POST /api/v1/cart/sync
func (h *CartHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req model.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Sync(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *CartHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, productModel.ErrProductNotFound):
		response.ErrorResponse(c, http.StatusNotFound, productModel.ErrCodeProductNotFound, err.Error())
	case errors.Is(err, productModel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, productModel.ErrCodeInsufficientStock, err.Error())
	case errors.Is(err, model.ErrCartItemNotFound):
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCartItemNotFound, err.Error())
	default:
		response.InternalServerError(c, "internal server error")
	}
}
