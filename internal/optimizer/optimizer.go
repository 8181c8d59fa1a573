// Package optimizer searches the space of price changes for a delta vector
// maximizing a business objective subject to constraints.
//
// A joint grid search over every product is combinatorially infeasible
// (candidates^products evaluations), so the search uses coordinate-wise
// refinement: one product's delta is optimized over a 1-D grid while the
// others are held fixed, and full passes repeat until the objective stops
// improving. Each candidate is scored on the full scenario, so cross-price
// effects on already-set products are captured. With non-negligible
// cross-elasticities this converges to a local optimum of the coupled
// objective; it is not guaranteed to find the global joint optimum.
package optimizer

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/constraint"
	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/internal/simulation"
	"github.com/pricelab/pricing-sim/pkg/constants"
)

// SearchConfig bounds the candidate grid and the iteration budget.
// Zero values fall back to the package defaults.
type SearchConfig struct {
	MinDelta  float64 `yaml:"minDelta" json:"min_delta"`
	MaxDelta  float64 `yaml:"maxDelta" json:"max_delta"`
	Step      float64 `yaml:"step" json:"step"`
	Tolerance float64 `yaml:"tolerance" json:"tolerance"`
	MaxPasses int     `yaml:"maxPasses" json:"max_passes"`
}

func (c SearchConfig) withDefaults() SearchConfig {
	if c.MinDelta == 0 && c.MaxDelta == 0 {
		c.MinDelta = constants.DefaultMinDelta
		c.MaxDelta = constants.DefaultMaxDelta
	}
	if c.Step <= 0 {
		c.Step = constants.DefaultGridStep
	}
	if c.Tolerance <= 0 {
		c.Tolerance = constants.DefaultTolerance
	}
	if c.MaxPasses <= 0 {
		c.MaxPasses = constants.DefaultMaxPasses
	}
	return c
}

// grid materializes the candidate deltas by index to avoid accumulating
// floating-point drift.
func (c SearchConfig) grid() []float64 {
	n := int(math.Floor((c.MaxDelta-c.MinDelta)/c.Step + constants.GridEpsilon))
	values := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, c.MinDelta+float64(i)*c.Step)
	}
	return values
}

// Searcher drives the simulator and constraint manager to evaluate candidate
// scenarios. It holds no mutable state across Optimize calls.
type Searcher struct {
	logger      *zap.Logger
	sim         *simulation.Simulator
	constraints *constraint.Manager
}

// NewSearcher constructs a Searcher.
func NewSearcher(logger *zap.Logger, sim *simulation.Simulator, cm *constraint.Manager) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sim == nil {
		sim = simulation.NewSimulator(logger)
	}
	if cm == nil {
		cm = constraint.NewManager(logger, sim)
	}
	return &Searcher{logger: logger, sim: sim, constraints: cm}
}

// Optimize runs coordinate-wise refinement and returns the best delta vector
// found. Products without a valid elasticity model are frozen at delta 0 and
// excluded from the candidate search; they still contribute their static
// totals to the objective. The convergence flag is set only when a full pass
// improved the objective by less than the relative tolerance; hitting the
// pass cap reports Converged = false and a warning, not an error.
func (s *Searcher) Optimize(products []model.Product, models map[string]model.ElasticityModel, registry []model.Constraint, objective Objective, cfg SearchConfig) (*model.OptimizationResult, error) {
	cfg = cfg.withDefaults()
	candidates := cfg.grid()

	var order []string
	scenario := make(model.ScenarioInput)
	for _, p := range products {
		if m, ok := models[p.ID]; ok && m.Valid {
			order = append(order, p.ID)
			scenario[p.ID] = 0
		}
	}
	sort.Strings(order)

	prev, err := s.evaluate(products, models, scenario, objective)
	if err != nil {
		return nil, err
	}

	result := &model.OptimizationResult{
		Objective: string(objective),
		Deltas:    scenario,
	}

	for pass := 1; pass <= cfg.MaxPasses; pass++ {
		moves := 0
		for _, id := range order {
			current := scenario[id]
			bestDelta := current
			bestScore, err := s.evaluate(products, models, scenario, objective)
			if err != nil {
				return nil, err
			}

			for _, candidate := range candidates {
				if candidate == current {
					continue
				}
				scenario[id] = candidate
				feasible, _, err := s.constraints.Validate(scenario, products, models, registry)
				if err != nil {
					return nil, err
				}
				if !feasible {
					continue
				}
				score, err := s.evaluate(products, models, scenario, objective)
				if err != nil {
					return nil, err
				}
				if score > bestScore {
					bestScore = score
					bestDelta = candidate
				}
			}

			scenario[id] = bestDelta
			if bestDelta != current {
				moves++
			}
		}

		passScore, err := s.evaluate(products, models, scenario, objective)
		if err != nil {
			return nil, err
		}
		result.Trace = append(result.Trace, model.PassTrace{Pass: pass, Objective: passScore, Moves: moves})
		result.Passes = pass
		result.ObjectiveValue = passScore

		improvement := (passScore - prev) / math.Max(math.Abs(prev), constants.GridEpsilon)
		prev = passScore
		if improvement < cfg.Tolerance {
			result.Converged = true
			break
		}
	}

	if !result.Converged {
		s.logger.Warn("optimizer hit the pass cap before meeting tolerance",
			zap.String("op", "optimizer.Optimize"),
			zap.Int("passes", result.Passes),
			zap.Float64("objective", result.ObjectiveValue),
		)
	} else {
		s.logger.Info("optimizer converged",
			zap.String("op", "optimizer.Optimize"),
			zap.Int("passes", result.Passes),
			zap.String("objective", string(objective)),
			zap.Float64("value", result.ObjectiveValue),
		)
	}

	return result, nil
}

func (s *Searcher) evaluate(products []model.Product, models map[string]model.ElasticityModel, scenario model.ScenarioInput, objective Objective) (float64, error) {
	results, err := s.sim.Simulate(products, models, scenario)
	if err != nil {
		return 0, err
	}
	return objective.Score(results), nil
}
