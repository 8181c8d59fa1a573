package model

// ScenarioInput maps product ids to fractional price deltas (+0.10 raises the
// price by 10%). Products absent from the map are simulated at delta 0. The
// engine never clamps deltas; constraints decide feasibility.
type ScenarioInput map[string]float64

// Clone returns an independent copy of the scenario.
func (s ScenarioInput) Clone() ScenarioInput {
	out := make(ScenarioInput, len(s))
	for id, delta := range s {
		out[id] = delta
	}
	return out
}

// SimulationResult is the projected outcome for a single product under a
// scenario. Derived values only; never mutated after creation.
type SimulationResult struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`

	PriceDelta float64 `json:"price_change_pct"`
	Elasticity float64 `json:"elasticity"`

	OldPrice float64 `json:"old_price"`
	NewPrice float64 `json:"new_price"`

	OldVolume    float64 `json:"old_volume"`
	NewVolume    float64 `json:"new_volume"`
	VolumeEffect float64 `json:"volume_change_pct"`

	OldRevenue float64 `json:"old_revenue"`
	NewRevenue float64 `json:"new_revenue"`

	OldProfit float64 `json:"old_profit"`
	NewProfit float64 `json:"new_profit"`

	// RevenueChange and ProfitChange are fractional changes, omitted when the
	// old value is zero.
	RevenueChange *float64 `json:"revenue_change_pct,omitempty"`
	ProfitChange  *float64 `json:"profit_change_pct,omitempty"`

	// MarginDelta is new margin minus old margin, omitted when either
	// revenue is zero.
	MarginDelta *float64 `json:"margin_delta,omitempty"`

	// NoModel marks products simulated without a valid elasticity model
	// (own elasticity treated as 0, which is not the same as knowing it is 0).
	NoModel bool `json:"no_model,omitempty"`
}

// PassTrace records one coordinate pass of the optimizer for diagnostics.
type PassTrace struct {
	Pass      int     `json:"pass"`
	Objective float64 `json:"objective"`
	// Moves counts products whose delta changed during the pass.
	Moves int `json:"moves"`
}

// OptimizationResult is the outcome of a price search.
type OptimizationResult struct {
	Objective      string        `json:"objective"`
	ObjectiveValue float64       `json:"objective_value"`
	Deltas         ScenarioInput `json:"deltas"`
	Trace          []PassTrace   `json:"trace"`
	Passes         int           `json:"passes"`

	// Converged is true only when termination was due to the tolerance
	// criterion, not the pass cap.
	Converged bool `json:"converged"`
}
