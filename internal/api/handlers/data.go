package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/api/models"
	"github.com/pricelab/pricing-sim/internal/data"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/pkg/constants"
)

// LoadData handles POST /api/v1/data/load.
func (h *Handler) LoadData(c *gin.Context) {
	var req models.LoadDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	products := req.Products
	if req.DeriveVolumes {
		products = data.DeriveVolumes(products, req.History, constants.DefaultFallbackVolume)
	}

	snap, err := h.svc.LoadSnapshot(products, req.History)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := models.LoadDataResponse{
		SnapshotID:   snap.ID,
		Products:     len(products),
		Observations: len(req.History),
	}

	if req.Estimate {
		method := model.Method(req.Method)
		if req.Method == "" {
			method = model.MethodLogLog
		}
		elasticities, err := h.svc.CalculateElasticity(method, nil, true)
		if err != nil {
			h.respondError(c, err)
			return
		}
		resp.Elasticities = elasticities
	}

	c.JSON(http.StatusOK, resp)
}

// LoadDemoData handles GET /api/v1/data/demo: loads the synthetic dataset
// and estimates elasticities over it.
func (h *Handler) LoadDemoData(c *gin.Context) {
	products, history := data.DemoDataset()

	snap, err := h.svc.LoadSnapshot(products, history)
	if err != nil {
		h.respondError(c, err)
		return
	}

	elasticities, err := h.svc.CalculateElasticity(model.MethodLogLog, nil, true)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("demo dataset loaded",
		zap.String("op", "handlers.LoadDemoData"),
		zap.String("snapshot", snap.ID),
	)

	c.JSON(http.StatusOK, models.LoadDataResponse{
		SnapshotID:   snap.ID,
		Products:     len(products),
		Observations: len(history),
		Elasticities: elasticities,
	})
}
