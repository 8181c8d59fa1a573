// Package model defines the core domain types shared by the elasticity,
// simulation, constraint, and optimizer packages, together with the typed
// errors those packages report.
package model

// Product is an immutable snapshot of a catalog entry at simulation time.
// The data-loading collaborator owns the values; the engine only reads them.
type Product struct {
	ID            string  `yaml:"productId" json:"product_id"`
	Name          string  `yaml:"name" json:"name"`
	Category      string  `yaml:"category" json:"category"`
	CurrentPrice  float64 `yaml:"currentPrice" json:"current_price"`
	CurrentVolume float64 `yaml:"currentVolume" json:"current_volume"`
	UnitCost      float64 `yaml:"unitCost" json:"unit_cost"`
}

// HistoricalObservation is one observed price/volume point for a product.
// Period is an opaque label ("2023-W07", a date, ...) used to align
// observations across products for cross-price estimation.
type HistoricalObservation struct {
	ProductID string  `yaml:"productId" json:"product_id"`
	Period    string  `yaml:"period" json:"period"`
	Price     float64 `yaml:"price" json:"price"`
	Volume    float64 `yaml:"volume" json:"volume"`
}
