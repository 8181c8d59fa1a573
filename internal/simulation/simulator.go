// Package simulation projects the volume, revenue, margin, and profit impact
// of a set of price changes over an immutable product and elasticity
// snapshot. Simulate is a pure function: no I/O, no randomness, and the same
// inputs always produce the same outputs.
package simulation

import (
	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/model"
)

// Simulator applies scenarios to product snapshots.
type Simulator struct {
	logger *zap.Logger
}

// NewSimulator constructs a Simulator with the provided logger.
func NewSimulator(logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{logger: logger}
}

// Simulate evaluates scenario against products and models. Every product is
// reported, including those absent from the scenario (delta 0, old == new).
// A scenario entry naming a product missing from the snapshot is fatal and
// returns UnknownProductError.
//
// Volume response for product i is
//
//	own_i * delta_i + sum_j cross_ij * delta_j
//
// summed over scenario products j with a modeled cross term on i; unmodeled
// cross terms contribute zero. Volumes are floored at zero: elasticities
// strong enough to drive the response below -1 saturate rather than going
// negative.
func (s *Simulator) Simulate(products []model.Product, models map[string]model.ElasticityModel, scenario model.ScenarioInput) ([]model.SimulationResult, error) {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for id := range scenario {
		if _, ok := byID[id]; !ok {
			return nil, &model.UnknownProductError{ProductID: id}
		}
	}

	results := make([]model.SimulationResult, 0, len(products))
	for _, p := range products {
		results = append(results, s.simulateProduct(p, models, scenario))
	}

	s.logger.Debug("scenario simulated",
		zap.String("op", "simulation.Simulate"),
		zap.Int("products", len(products)),
		zap.Int("changed", len(scenario)),
	)

	return results, nil
}

func (s *Simulator) simulateProduct(p model.Product, models map[string]model.ElasticityModel, scenario model.ScenarioInput) model.SimulationResult {
	delta := scenario[p.ID]
	newPrice := p.CurrentPrice * (1 + delta)

	m, hasModel := models[p.ID]
	noModel := !hasModel || !m.Valid

	volumeEffect := 0.0
	ownElasticity := 0.0
	if !noModel {
		ownElasticity = m.OwnPrice
		volumeEffect = m.OwnPrice * delta
		for otherID, otherDelta := range scenario {
			if otherID == p.ID {
				continue
			}
			if cross, ok := m.CrossTerm(otherID); ok {
				volumeEffect += cross * otherDelta
			}
		}
	}

	newVolume := p.CurrentVolume * (1 + volumeEffect)
	if newVolume < 0 {
		newVolume = 0
	}

	oldRevenue := p.CurrentPrice * p.CurrentVolume
	newRevenue := newPrice * newVolume
	oldProfit := (p.CurrentPrice - p.UnitCost) * p.CurrentVolume
	newProfit := (newPrice - p.UnitCost) * newVolume

	res := model.SimulationResult{
		ProductID:    p.ID,
		ProductName:  p.Name,
		Category:     p.Category,
		PriceDelta:   delta,
		Elasticity:   ownElasticity,
		OldPrice:     p.CurrentPrice,
		NewPrice:     newPrice,
		OldVolume:    p.CurrentVolume,
		NewVolume:    newVolume,
		VolumeEffect: volumeEffect,
		OldRevenue:   oldRevenue,
		NewRevenue:   newRevenue,
		OldProfit:    oldProfit,
		NewProfit:    newProfit,
		NoModel:      noModel,
	}

	if oldRevenue != 0 {
		change := (newRevenue - oldRevenue) / oldRevenue
		res.RevenueChange = &change
	}
	if oldProfit != 0 {
		change := (newProfit - oldProfit) / oldProfit
		res.ProfitChange = &change
	}
	if oldRevenue != 0 && newRevenue != 0 {
		marginDelta := newProfit/newRevenue - oldProfit/oldRevenue
		res.MarginDelta = &marginDelta
	}

	return res
}
