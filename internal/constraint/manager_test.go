package constraint

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/simulation"
)

func newManager() *Manager {
	return NewManager(zap.NewNop(), simulation.NewSimulator(zap.NewNop()))
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: "P1", CurrentPrice: 10, CurrentVolume: 1000, UnitCost: 6},
		{ID: "P2", CurrentPrice: 20, CurrentVolume: 500, UnitCost: 18},
	}
}

func testModels() map[string]model.ElasticityModel {
	return map[string]model.ElasticityModel{
		"P1": {ProductID: "P1", OwnPrice: -1.2, Method: model.MethodManual, Valid: true},
		"P2": {ProductID: "P2", OwnPrice: -0.8, Method: model.MethodManual, Valid: true},
	}
}

func TestValidateFeasibleScenario(t *testing.T) {
	m := newManager()

	constraints := []model.Constraint{
		{Scope: model.ScopeGlobal, Kind: model.ConstraintMaxIncrease, Threshold: 0.20},
		{Scope: model.ScopeGlobal, Kind: model.ConstraintMaxDecrease, Threshold: 0.20},
	}

	feasible, violations, err := m.Validate(model.ScenarioInput{"P1": 0.10, "P2": -0.10}, testProducts(), testModels(), constraints)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !feasible {
		t.Errorf("expected feasible scenario, got violations %+v", violations)
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	m := newManager()

	// Three independent violations: P1 rises too far, P2 falls too far, and
	// P2's thin margin collapses below the floor.
	constraints := []model.Constraint{
		{Scope: model.ScopeProduct, ProductID: "P1", Kind: model.ConstraintMaxIncrease, Threshold: 0.05},
		{Scope: model.ScopeProduct, ProductID: "P2", Kind: model.ConstraintMaxDecrease, Threshold: 0.05},
		{Scope: model.ScopeProduct, ProductID: "P2", Kind: model.ConstraintMinMargin, Threshold: 0.10},
	}

	feasible, violations, err := m.Validate(model.ScenarioInput{"P1": 0.20, "P2": -0.20}, testProducts(), testModels(), constraints)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if feasible {
		t.Fatal("expected infeasible scenario")
	}
	if len(violations) != 3 {
		t.Fatalf("expected all 3 violations reported, got %d: %+v", len(violations), violations)
	}
}

func TestValidateGlobalScopeCoversScenarioProducts(t *testing.T) {
	m := newManager()

	constraints := []model.Constraint{
		{Scope: model.ScopeGlobal, Kind: model.ConstraintMaxIncrease, Threshold: 0.05},
	}

	feasible, violations, err := m.Validate(model.ScenarioInput{"P1": 0.10, "P2": 0.10}, testProducts(), testModels(), constraints)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if feasible {
		t.Fatal("expected infeasible scenario")
	}
	if len(violations) != 2 {
		t.Errorf("global constraint must be checked per scenario product, got %d violations", len(violations))
	}
}

func TestValidateMinMarginUsesSimulatedMargin(t *testing.T) {
	m := newManager()

	// P2 margin at current prices is (20-18)/20 = 10%; a 5% price cut drops
	// the simulated margin below an 8% floor.
	constraints := []model.Constraint{
		{Scope: model.ScopeProduct, ProductID: "P2", Kind: model.ConstraintMinMargin, Threshold: 0.08},
	}

	feasible, _, err := m.Validate(model.ScenarioInput{"P2": -0.05}, testProducts(), testModels(), constraints)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if feasible {
		t.Error("expected margin floor violation after the price cut")
	}

	feasible, violations, err := m.Validate(model.ScenarioInput{"P2": 0.05}, testProducts(), testModels(), constraints)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !feasible {
		t.Errorf("price increase should satisfy the floor, got %+v", violations)
	}
}

func TestValidateUnknownProductInScenario(t *testing.T) {
	m := newManager()

	_, _, err := m.Validate(model.ScenarioInput{"GHOST": 0.1}, testProducts(), testModels(), nil)
	var unknown *model.UnknownProductError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProductError, got %v", err)
	}
}

func TestValidateUnknownProductInConstraint(t *testing.T) {
	m := newManager()

	constraints := []model.Constraint{
		{Scope: model.ScopeProduct, ProductID: "GHOST", Kind: model.ConstraintMaxIncrease, Threshold: 0.1},
	}

	_, _, err := m.Validate(model.ScenarioInput{"P1": 0.1}, testProducts(), testModels(), constraints)
	var unknown *model.UnknownProductError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProductError, got %v", err)
	}
}

func TestValidateStrict(t *testing.T) {
	m := newManager()

	constraints := []model.Constraint{
		{Scope: model.ScopeGlobal, Kind: model.ConstraintMaxIncrease, Threshold: 0.05},
	}

	err := m.ValidateStrict(model.ScenarioInput{"P1": 0.20}, testProducts(), testModels(), constraints)
	var violated *model.ConstraintViolationError
	if !errors.As(err, &violated) {
		t.Fatalf("expected ConstraintViolationError, got %v", err)
	}
	if len(violated.Violations) != 1 {
		t.Errorf("expected 1 violation, got %d", len(violated.Violations))
	}

	if err := m.ValidateStrict(model.ScenarioInput{"P1": 0.01}, testProducts(), testModels(), constraints); err != nil {
		t.Errorf("expected feasible scenario to pass strict validation, got %v", err)
	}
}
