package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricelab/pricing-sim/internal/api/models"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/optimizer"
)

// Optimize handles POST /api/v1/optimize.
func (h *Handler) Optimize(c *gin.Context) {
	var req models.OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	objective := req.Objective
	if objective == "" {
		objective = string(optimizer.ObjectiveProfit)
	}
	if _, err := optimizer.ParseObjective(objective); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    models.CodeInvalidObjective,
			Message: err.Error(),
		}})
		return
	}

	constraints := req.Constraints
	if req.MinMargin != nil {
		constraints = append(constraints, model.Constraint{
			Scope:     model.ScopeGlobal,
			Kind:      model.ConstraintMinMargin,
			Threshold: *req.MinMargin,
		})
	}
	if req.MaxChange != nil {
		constraints = append(constraints,
			model.Constraint{Scope: model.ScopeGlobal, Kind: model.ConstraintMaxIncrease, Threshold: *req.MaxChange},
			model.Constraint{Scope: model.ScopeGlobal, Kind: model.ConstraintMaxDecrease, Threshold: *req.MaxChange},
		)
	}

	result, err := h.svc.Optimize(objective, req.Search, constraints)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
