// Package constraint checks business rules (price-change bounds, margin
// floors) against candidate scenarios. Validation is side-effect-free and
// reports every violation found, not just the first.
package constraint

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/simulation"
	"github.com/pricelab/pricing-sim/pkg/constants"
)

// Manager validates scenarios against a constraint registry. Margin floors
// require a simulated margin, so the manager drives the simulator.
type Manager struct {
	logger *zap.Logger
	sim    *simulation.Simulator
}

// NewManager constructs a Manager backed by the given simulator.
func NewManager(logger *zap.Logger, sim *simulation.Simulator) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sim == nil {
		sim = simulation.NewSimulator(logger)
	}
	return &Manager{logger: logger, sim: sim}
}

// Validate checks scenario against every constraint and returns feasibility
// plus the full violation list. A constraint or scenario entry naming a
// product missing from the snapshot returns UnknownProductError.
func (m *Manager) Validate(scenario model.ScenarioInput, products []model.Product, models map[string]model.ElasticityModel, constraints []model.Constraint) (bool, []model.Violation, error) {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for id := range scenario {
		if _, ok := byID[id]; !ok {
			return false, nil, &model.UnknownProductError{ProductID: id}
		}
	}
	for _, c := range constraints {
		if c.Scope == model.ScopeProduct {
			if _, ok := byID[c.ProductID]; !ok {
				return false, nil, &model.UnknownProductError{ProductID: c.ProductID}
			}
		}
	}

	// Margin floors need the simulated outcome; run the scenario once and
	// index the per-product results.
	var margins map[string]model.SimulationResult
	if hasMarginConstraint(constraints) {
		results, err := m.sim.Simulate(products, models, scenario)
		if err != nil {
			return false, nil, err
		}
		margins = make(map[string]model.SimulationResult, len(results))
		for _, r := range results {
			margins[r.ProductID] = r
		}
	}

	var violations []model.Violation
	for _, c := range constraints {
		for _, id := range m.targets(c, scenario) {
			if v, violated := m.check(c, id, scenario[id], margins); violated {
				violations = append(violations, v)
			}
		}
	}

	return len(violations) == 0, violations, nil
}

// ValidateStrict behaves like Validate but converts an infeasible scenario
// into a ConstraintViolationError carrying every violation.
func (m *Manager) ValidateStrict(scenario model.ScenarioInput, products []model.Product, models map[string]model.ElasticityModel, constraints []model.Constraint) error {
	feasible, violations, err := m.Validate(scenario, products, models, constraints)
	if err != nil {
		return err
	}
	if !feasible {
		return &model.ConstraintViolationError{Violations: violations}
	}
	return nil
}

// targets resolves the product ids a constraint applies to: the named
// product for product scope, every product in the scenario for global scope.
func (m *Manager) targets(c model.Constraint, scenario model.ScenarioInput) []string {
	if c.Scope == model.ScopeProduct {
		return []string{c.ProductID}
	}
	ids := make([]string, 0, len(scenario))
	for id := range scenario {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) check(c model.Constraint, productID string, delta float64, margins map[string]model.SimulationResult) (model.Violation, bool) {
	switch c.Kind {
	case model.ConstraintMaxIncrease:
		if delta > c.Threshold+constants.GridEpsilon {
			return model.Violation{
				Constraint: c,
				ProductID:  productID,
				Actual:     delta,
				Message:    fmt.Sprintf("product %s: price increase %.4f exceeds maximum %.4f", productID, delta, c.Threshold),
			}, true
		}
	case model.ConstraintMaxDecrease:
		// Threshold is a positive magnitude; delta below -threshold violates.
		if delta < -c.Threshold-constants.GridEpsilon {
			return model.Violation{
				Constraint: c,
				ProductID:  productID,
				Actual:     delta,
				Message:    fmt.Sprintf("product %s: price decrease %.4f exceeds maximum %.4f", productID, -delta, c.Threshold),
			}, true
		}
	case model.ConstraintMinMargin:
		r, ok := margins[productID]
		if !ok {
			return model.Violation{}, false
		}
		if r.NewRevenue == 0 {
			// Margin is undefined at zero revenue; a floor that cannot be
			// verified is reported as violated.
			return model.Violation{
				Constraint: c,
				ProductID:  productID,
				Actual:     0,
				Message:    fmt.Sprintf("product %s: margin undefined at zero simulated revenue, floor %.4f", productID, c.Threshold),
			}, true
		}
		margin := r.NewProfit / r.NewRevenue
		if margin < c.Threshold {
			return model.Violation{
				Constraint: c,
				ProductID:  productID,
				Actual:     margin,
				Message:    fmt.Sprintf("product %s: simulated margin %.4f below floor %.4f", productID, margin, c.Threshold),
			}, true
		}
	}
	return model.Violation{}, false
}

func hasMarginConstraint(constraints []model.Constraint) bool {
	for _, c := range constraints {
		if c.Kind == model.ConstraintMinMargin {
			return true
		}
	}
	return false
}
