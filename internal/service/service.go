// Package service ties the snapshot store, elasticity engine, simulator,
// constraint manager, and optimizer together behind the interface the CLI
// and API collaborators consume. All operations are synchronous and read
// from the snapshot that was current when the call started; a concurrent
// reload never affects an in-flight call.
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/constraint"
	"github.com/pricelab/pricing-sim/internal/elasticity"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/optimizer"
	"github.com/pricelab/pricing-sim/internal/simulation"
	"github.com/pricelab/pricing-sim/internal/snapshot"
)

// ErrNoSnapshot is returned when an operation requires data but nothing has
// been loaded yet.
var ErrNoSnapshot = errors.New("no snapshot loaded")

// Service is the engine facade.
type Service struct {
	logger *zap.Logger
	store  *snapshot.Store
	engine *elasticity.Engine
	sim    *simulation.Simulator
	cm     *constraint.Manager
	search *optimizer.Searcher
}

// New constructs a Service with an empty snapshot store.
func New(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	sim := simulation.NewSimulator(logger)
	cm := constraint.NewManager(logger, sim)
	return &Service{
		logger: logger,
		store:  snapshot.NewStore(),
		engine: elasticity.NewEngine(logger),
		sim:    sim,
		cm:     cm,
		search: optimizer.NewSearcher(logger, sim, cm),
	}
}

// LoadSnapshot validates the dataset and atomically replaces the active
// snapshot. Previously estimated models are discarded; they described the
// old data.
func (s *Service) LoadSnapshot(products []model.Product, observations []model.HistoricalObservation) (*snapshot.Snapshot, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("no products provided")
	}
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("product with empty identifier")
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product identifier %s", p.ID)
		}
		seen[p.ID] = true
		if p.CurrentPrice <= 0 {
			return nil, fmt.Errorf("product %s: current price must be positive, got %v", p.ID, p.CurrentPrice)
		}
		if p.CurrentVolume < 0 {
			return nil, fmt.Errorf("product %s: current volume must be non-negative, got %v", p.ID, p.CurrentVolume)
		}
		if p.UnitCost < 0 {
			return nil, fmt.Errorf("product %s: unit cost must be non-negative, got %v", p.ID, p.UnitCost)
		}
	}
	for _, o := range observations {
		if !seen[o.ProductID] {
			return nil, &model.UnknownProductError{ProductID: o.ProductID}
		}
		if o.Price <= 0 {
			return nil, fmt.Errorf("observation for %s in period %s: price must be positive, got %v", o.ProductID, o.Period, o.Price)
		}
		if o.Volume < 0 {
			return nil, fmt.Errorf("observation for %s in period %s: volume must be non-negative, got %v", o.ProductID, o.Period, o.Volume)
		}
	}

	snap := s.store.Load(products, observations)
	s.logger.Info("snapshot loaded",
		zap.String("op", "service.LoadSnapshot"),
		zap.String("snapshot", snap.ID),
		zap.Int("products", len(products)),
		zap.Int("observations", len(observations)),
	)
	return snap, nil
}

// CalculateElasticity runs the elasticity engine over the active snapshot
// and swaps in a successor snapshot carrying the model set. Overrides supply
// manual elasticities that bypass regression for the named products.
func (s *Service) CalculateElasticity(method model.Method, overrides map[string]float64, estimateCross bool) (map[string]model.ElasticityModel, error) {
	if !model.ValidMethod(method) {
		return nil, fmt.Errorf("unsupported elasticity method %q", method)
	}
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	for id := range overrides {
		if _, ok := snap.Product(id); !ok {
			return nil, &model.UnknownProductError{ProductID: id}
		}
	}

	models := s.engine.CalculateAll(snap.Products, snap.Observations, method, overrides, estimateCross)
	s.store.Swap(snap.WithModels(models))
	return models, nil
}

// Simulate evaluates a scenario against the active snapshot.
func (s *Service) Simulate(scenario model.ScenarioInput) ([]model.SimulationResult, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return s.sim.Simulate(snap.Products, snap.Models, scenario)
}

// Validate checks a scenario against a constraint registry, reporting every
// violation.
func (s *Service) Validate(scenario model.ScenarioInput, constraints []model.Constraint) (bool, []model.Violation, error) {
	snap := s.store.Current()
	if snap == nil {
		return false, nil, ErrNoSnapshot
	}
	return s.cm.Validate(scenario, snap.Products, snap.Models, constraints)
}

// Optimize searches for the feasible delta vector maximizing the objective.
func (s *Service) Optimize(objectiveName string, cfg optimizer.SearchConfig, constraints []model.Constraint) (*model.OptimizationResult, error) {
	objective, err := optimizer.ParseObjective(objectiveName)
	if err != nil {
		return nil, err
	}
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return s.search.Optimize(snap.Products, snap.Models, constraints, objective, cfg)
}

// ProductView joins a product with its current elasticity model summary for
// display purposes.
type ProductView struct {
	model.Product
	Elasticity *float64 `json:"elasticity,omitempty"`
	RSquared   *float64 `json:"r_squared,omitempty"`
	Method     string   `json:"method,omitempty"`
	Valid      *bool    `json:"valid,omitempty"`
}

// Products returns the catalog from the active snapshot, each product joined
// with its elasticity summary when one has been estimated.
func (s *Service) Products() ([]ProductView, error) {
	snap := s.store.Current()
	if snap == nil {
		return nil, ErrNoSnapshot
	}

	views := make([]ProductView, 0, len(snap.Products))
	for _, p := range snap.Products {
		view := ProductView{Product: p}
		if m, ok := snap.Models[p.ID]; ok {
			elasticity := m.OwnPrice
			valid := m.Valid
			view.Elasticity = &elasticity
			view.RSquared = m.RSquared
			view.Method = string(m.Method)
			view.Valid = &valid
		}
		views = append(views, view)
	}
	return views, nil
}

// Snapshot exposes the active snapshot for read-only collaborators.
func (s *Service) Snapshot() *snapshot.Snapshot {
	return s.store.Current()
}
