package models

import (
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/pkg/summary"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNoSnapshot          = "NO_SNAPSHOT"
	CodeUnknownProduct      = "UNKNOWN_PRODUCT"
	CodeInvalidObjective    = "INVALID_OBJECTIVE"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeInternalError       = "INTERNAL_ERROR"
)

// LoadDataResponse reports what was loaded and, optionally, the estimated
// model set.
type LoadDataResponse struct {
	SnapshotID   string                           `json:"snapshot_id"`
	Products     int                              `json:"products"`
	Observations int                              `json:"observations"`
	Elasticities map[string]model.ElasticityModel `json:"elasticities,omitempty"`
}

// ElasticityResponse carries the estimated model set.
type ElasticityResponse struct {
	Method       string                           `json:"method"`
	Elasticities map[string]model.ElasticityModel `json:"elasticities"`
}

// SimulationResponse carries per-product projections plus portfolio totals
// and any constraint violations found during non-strict validation.
type SimulationResponse struct {
	Results    []model.SimulationResult `json:"results"`
	Summary    summary.Portfolio        `json:"summary"`
	Feasible   *bool                    `json:"feasible,omitempty"`
	Violations []model.Violation        `json:"violations,omitempty"`
}
