// Package api assembles the gin router serving the pricing REST API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/api/handlers"
	"github.com/pricelab/pricing-sim/internal/api/middleware"
	"github.com/pricelab/pricing-sim/internal/service"
)

// NewRouter wires the middleware and routes over a shared service instance.
func NewRouter(logger *zap.Logger, svc *service.Service) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())

	h := handlers.NewHandler(logger, svc)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/data/demo", h.LoadDemoData)
		v1.POST("/data/load", h.LoadData)
		v1.POST("/elasticity", h.CalculateElasticity)
		v1.POST("/simulate", h.Simulate)
		v1.POST("/optimize", h.Optimize)
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/export", h.ExportProducts)
	}

	return router
}
