package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pricelab/pricing-sim/internal/api/models"
	"github.com/pricelab/pricing-sim/internal/model"
)

// CalculateElasticity handles POST /api/v1/elasticity.
func (h *Handler) CalculateElasticity(c *gin.Context) {
	var req models.ElasticityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	estimateCross := true
	if req.EstimateCross != nil {
		estimateCross = *req.EstimateCross
	}

	elasticities, err := h.svc.CalculateElasticity(model.Method(req.Method), req.Overrides, estimateCross)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ElasticityResponse{
		Method:       req.Method,
		Elasticities: elasticities,
	})
}
