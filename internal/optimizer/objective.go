package optimizer

import (
	"fmt"

	"github.com/pricelab/pricing-sim/internal/model"
)

// Objective selects the portfolio total the search maximizes.
type Objective string

const (
	// ObjectiveProfit maximizes total new profit.
	ObjectiveProfit Objective = "profit"

	// ObjectiveRevenue maximizes total new revenue.
	ObjectiveRevenue Objective = "revenue"

	// ObjectiveVolume maximizes total new volume.
	ObjectiveVolume Objective = "volume"
)

// ParseObjective validates a runtime objective name.
func ParseObjective(name string) (Objective, error) {
	switch Objective(name) {
	case ObjectiveProfit, ObjectiveRevenue, ObjectiveVolume:
		return Objective(name), nil
	}
	return "", fmt.Errorf("objective must be one of %s, %s, %s; got %q",
		ObjectiveProfit, ObjectiveRevenue, ObjectiveVolume, name)
}

// Score sums the objective's field across every simulated product.
func (o Objective) Score(results []model.SimulationResult) float64 {
	total := 0.0
	for _, r := range results {
		switch o {
		case ObjectiveProfit:
			total += r.NewProfit
		case ObjectiveRevenue:
			total += r.NewRevenue
		case ObjectiveVolume:
			total += r.NewVolume
		}
	}
	return total
}
