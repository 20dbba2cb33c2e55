package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gymangel-backend/internal/domains/plan/model"
	"gymangel-backend/internal/domains/plan/service"
	"gymangel-backend/internal/shared/response"
)

// PlanHandler phục vụ pricing page, các route này public (không cần auth)
type PlanHandler struct {
	service service.ServiceInterface
}

func NewPlanHandler(s service.ServiceInterface) *PlanHandler {
	return &PlanHandler{service: s}
}

// ListPlans - GET /api/v1/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListActivePlans(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, plans)
}

// GetPlan - GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid plan id")
		return
	}

	plan, err := h.service.GetPlan(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, model.ErrPlanNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodePlanNotFound, err.Error())
			return
		}
		response.InternalServerError(c, "internal server error")
		return
	}

	response.Success(c, http.StatusOK, plan)
}
