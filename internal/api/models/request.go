// Package models defines the request and response bodies of the REST API.
package models

import (
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/optimizer"
)

// LoadDataRequest replaces the active snapshot with the provided dataset.
type LoadDataRequest struct {
	Products []model.Product               `json:"products" binding:"required"`
	History  []model.HistoricalObservation `json:"history,omitempty"`

	// DeriveVolumes fills zero current volumes from historical means.
	DeriveVolumes bool `json:"derive_volumes,omitempty"`

	// Estimate triggers elasticity estimation right after loading.
	Estimate bool   `json:"estimate,omitempty"`
	Method   string `json:"method,omitempty"`
}

// ElasticityRequest re-estimates the model set over the active snapshot.
type ElasticityRequest struct {
	Method    string             `json:"method" binding:"required"` // log_log, arc, manual
	Overrides map[string]float64 `json:"overrides,omitempty"`
	// EstimateCross defaults to true when omitted.
	EstimateCross *bool `json:"estimate_cross,omitempty"`
}

// SimulationRequest evaluates one pricing scenario.
type SimulationRequest struct {
	PriceChanges map[string]float64 `json:"price_changes" binding:"required"`

	// Constraints, when present, are validated against the scenario; Strict
	// turns violations into a request failure instead of report data.
	Constraints []model.Constraint `json:"constraints,omitempty"`
	Strict      bool               `json:"strict,omitempty"`
}

// OptimizationRequest searches for the best feasible delta vector.
type OptimizationRequest struct {
	Objective   string                 `json:"objective"`
	Search      optimizer.SearchConfig `json:"search,omitempty"`
	Constraints []model.Constraint     `json:"constraints,omitempty"`

	// MinMargin and MaxChange are shorthand for a global min_margin and a
	// symmetric max_increase/max_decrease constraint.
	MinMargin *float64 `json:"min_margin,omitempty"`
	MaxChange *float64 `json:"max_change,omitempty"`
}
