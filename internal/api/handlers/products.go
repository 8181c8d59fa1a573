package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/pricelab/pricing-sim/internal/data"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/service"
)

// ListProducts handles GET /api/v1/products: the catalog joined with each
// product's elasticity summary when one has been estimated.
func (h *Handler) ListProducts(c *gin.Context) {
	views, err := h.svc.Products()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ExportProducts handles GET /api/v1/products/export: the active dataset as
// a YAML document suitable for reloading later.
func (h *Handler) ExportProducts(c *gin.Context) {
	snap := h.svc.Snapshot()
	if snap == nil {
		h.respondError(c, service.ErrNoSnapshot)
		return
	}

	ids := make([]string, 0, len(snap.Observations))
	for id := range snap.Observations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var history []model.HistoricalObservation
	for _, id := range ids {
		history = append(history, snap.Observations[id]...)
	}

	payload, err := data.MarshalDataset(snap.Products, history)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/x-yaml", payload)
}
