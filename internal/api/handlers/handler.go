// Package handlers implements the REST endpoints over the pricing service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/api/models"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/service"
)

// Handler serves all pricing endpoints against a shared service instance.
type Handler struct {
	logger *zap.Logger
	svc    *service.Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *zap.Logger, svc *service.Service) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if svc == nil {
		svc = service.New(logger)
	}
	return &Handler{logger: logger, svc: svc}
}

// respondError maps service errors onto the API's error envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	var unknown *model.UnknownProductError
	var violated *model.ConstraintViolationError

	switch {
	case errors.Is(err, service.ErrNoSnapshot):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    models.CodeNoSnapshot,
			Message: "no data loaded; load a dataset or the demo data first",
		}})
	case errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    models.CodeUnknownProduct,
			Message: err.Error(),
		}})
	case errors.As(err, &violated):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    models.CodeConstraintViolation,
			Message: err.Error(),
			Details: violated.Violations,
		}})
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    models.CodeInvalidRequest,
			Message: err.Error(),
		}})
	}
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
		Code:    models.CodeInvalidRequest,
		Message: err.Error(),
	}})
}
