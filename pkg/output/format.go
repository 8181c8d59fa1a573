// Package output provides utilities for formatting and displaying simulation
// and optimization results.
package output

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/pkg/summary"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []model.SimulationResult, portfolio summary.Portfolio) {
	p := message.NewPrinter(language.English)
	fmt.Printf("--- Simulation results ---\n")
	fmt.Printf("Product | Delta   | Price           | Volume            | Revenue             | Profit\n")
	fmt.Printf("_______ | _____   | _____           | ______            | _______             | ______\n")
	for _, r := range results {
		flag := ""
		if r.NoModel {
			flag = " (no model)"
		}
		_, _ = p.Printf("%s | %+.2f%% | $%.2f -> $%.2f | %.0f -> %.0f | $%.2f -> $%.2f | $%.2f -> $%.2f%s\n",
			r.ProductID, r.PriceDelta*100,
			r.OldPrice, r.NewPrice,
			r.OldVolume, r.NewVolume,
			r.OldRevenue, r.NewRevenue,
			r.OldProfit, r.NewProfit,
			flag,
		)
	}
	_, _ = p.Printf("Totals: revenue $%.2f -> $%.2f, profit $%.2f -> $%.2f (%d up, %d down)\n",
		portfolio.TotalOldRevenue, portfolio.TotalNewRevenue,
		portfolio.TotalOldProfit, portfolio.TotalNewProfit,
		portfolio.RevenueGainers, portfolio.RevenueLosers,
	)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []model.SimulationResult) {
	fmt.Printf("\"product_id\",\"delta\",\"old_price\",\"new_price\",\"old_volume\",\"new_volume\",\"old_revenue\",\"new_revenue\",\"old_profit\",\"new_profit\",\"no_model\"\n")
	for _, r := range results {
		fmt.Printf("\"%s\",\"%.4f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%.2f\",\"%t\"\n",
			r.ProductID, r.PriceDelta,
			r.OldPrice, r.NewPrice,
			r.OldVolume, r.NewVolume,
			r.OldRevenue, r.NewRevenue,
			r.OldProfit, r.NewProfit,
			r.NoModel,
		)
	}
}

// PrettyOptimization prints the optimizer's recommendation and trace.
func PrettyOptimization(result *model.OptimizationResult) {
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("--- Optimization (%s) ---\n", result.Objective)
	_, _ = p.Printf("Objective value: %.2f after %d pass(es), converged: %t\n",
		result.ObjectiveValue, result.Passes, result.Converged)

	ids := make([]string, 0, len(result.Deltas))
	for id := range result.Deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		_, _ = p.Printf("%s: %+.2f%%\n", id, result.Deltas[id]*100)
	}
	for _, tr := range result.Trace {
		_, _ = p.Printf("pass %d: objective %.2f, %d move(s)\n", tr.Pass, tr.Objective, tr.Moves)
	}
}
