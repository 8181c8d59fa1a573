package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricelab/pricing-sim/internal/api/models"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/pkg/summary"
)

// Simulate handles POST /api/v1/simulate.
func (h *Handler) Simulate(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	scenario := model.ScenarioInput(req.PriceChanges)

	resp := models.SimulationResponse{}
	if len(req.Constraints) > 0 {
		feasible, violations, err := h.svc.Validate(scenario, req.Constraints)
		if err != nil {
			h.respondError(c, err)
			return
		}
		if req.Strict && !feasible {
			h.respondError(c, &model.ConstraintViolationError{Violations: violations})
			return
		}
		resp.Feasible = &feasible
		resp.Violations = violations
	}

	results, err := h.svc.Simulate(scenario)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp.Results = results
	resp.Summary = summary.Aggregate(results)
	c.JSON(http.StatusOK, resp)
}
