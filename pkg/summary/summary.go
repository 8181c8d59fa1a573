// Package summary reduces simulation results into portfolio-level metrics.
package summary

import "github.com/pricelab/pricing-sim/internal/model"

// Portfolio aggregates a simulation run across all products.
type Portfolio struct {
	Products int `json:"products"`

	TotalOldRevenue float64 `json:"total_old_revenue"`
	TotalNewRevenue float64 `json:"total_new_revenue"`
	TotalOldProfit  float64 `json:"total_old_profit"`
	TotalNewProfit  float64 `json:"total_new_profit"`

	// Revenue-weighted average margins, omitted when the corresponding total
	// revenue is zero.
	OldMargin *float64 `json:"old_margin,omitempty"`
	NewMargin *float64 `json:"new_margin,omitempty"`

	// RevenueGainers and RevenueLosers count products whose revenue strictly
	// increased or decreased under the scenario.
	RevenueGainers int `json:"revenue_gainers"`
	RevenueLosers  int `json:"revenue_losers"`
}

// Aggregate folds a simulation result list into portfolio totals. Pure and
// read-only over its input.
func Aggregate(results []model.SimulationResult) Portfolio {
	p := Portfolio{Products: len(results)}
	for _, r := range results {
		p.TotalOldRevenue += r.OldRevenue
		p.TotalNewRevenue += r.NewRevenue
		p.TotalOldProfit += r.OldProfit
		p.TotalNewProfit += r.NewProfit

		if r.NewRevenue > r.OldRevenue {
			p.RevenueGainers++
		} else if r.NewRevenue < r.OldRevenue {
			p.RevenueLosers++
		}
	}

	if p.TotalOldRevenue != 0 {
		margin := p.TotalOldProfit / p.TotalOldRevenue
		p.OldMargin = &margin
	}
	if p.TotalNewRevenue != 0 {
		margin := p.TotalNewProfit / p.TotalNewRevenue
		p.NewMargin = &margin
	}

	return p
}
