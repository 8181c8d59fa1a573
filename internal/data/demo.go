package data

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/pkg/mathutil"
)

// DemoSeed makes the synthetic dataset reproducible across runs.
const DemoSeed = 42

// demoWeeks is the number of weekly periods generated per product.
const demoWeeks = 52

type demoProduct struct {
	product    model.Product
	baseVolume float64
	elasticity float64
}

// The demo catalog mirrors a small coffee-shop assortment with known true
// elasticities, so log-log estimation over the generated history recovers
// values close to these.
var demoCatalog = []demoProduct{
	{model.Product{ID: "P001", Name: "Premium Coffee Beans", Category: "Coffee", CurrentPrice: 18.00, UnitCost: 10.00}, 500, -1.2},
	{model.Product{ID: "P002", Name: "Standard Coffee Ground", Category: "Coffee", CurrentPrice: 9.99, UnitCost: 5.00}, 1200, -0.8},
	{model.Product{ID: "P003", Name: "Espresso Machine", Category: "Equipment", CurrentPrice: 299.00, UnitCost: 150.00}, 50, -1.5},
	{model.Product{ID: "P004", Name: "Coffee Filters (100pk)", Category: "Accessories", CurrentPrice: 2.99, UnitCost: 0.50}, 2000, -0.5},
	{model.Product{ID: "P005", Name: "Dark Roast Whole Bean", Category: "Coffee", CurrentPrice: 19.50, UnitCost: 11.00}, 450, -1.1},
	{model.Product{ID: "P006", Name: "Light Roast Blend", Category: "Coffee", CurrentPrice: 16.00, UnitCost: 9.00}, 600, -1.3},
}

// DemoDataset generates the synthetic demonstration dataset: the fixed
// catalog plus a year of weekly observations where prices jitter within
// +/-10% of the base price and volumes follow the product's true elasticity
// with 5% multiplicative noise.
func DemoDataset() ([]model.Product, []model.HistoricalObservation) {
	rng := rand.New(rand.NewSource(DemoSeed))

	products := make([]model.Product, 0, len(demoCatalog))
	for _, d := range demoCatalog {
		p := d.product
		p.CurrentVolume = d.baseVolume
		products = append(products, p)
	}

	var history []model.HistoricalObservation
	for week := 1; week <= demoWeeks; week++ {
		period := fmt.Sprintf("2023-W%02d", week)
		for _, d := range demoCatalog {
			price := d.product.CurrentPrice * (1 + (rng.Float64()*0.2 - 0.1))
			noise := 1 + rng.NormFloat64()*0.05
			volume := math.Floor(d.baseVolume * math.Pow(price/d.product.CurrentPrice, d.elasticity) * noise)
			if volume < 0 {
				volume = 0
			}
			history = append(history, model.HistoricalObservation{
				ProductID: d.product.ID,
				Period:    period,
				Price:     mathutil.Round(price),
				Volume:    volume,
			})
		}
	}

	return products, history
}

// DeriveVolumes fills in a zero current volume from the mean of the
// product's historical volumes, falling back to fallback when no history
// exists. Products with a volume already set are returned unchanged.
func DeriveVolumes(products []model.Product, history []model.HistoricalObservation, fallback float64) []model.Product {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, o := range history {
		sums[o.ProductID] += o.Volume
		counts[o.ProductID]++
	}

	out := make([]model.Product, len(products))
	for i, p := range products {
		if p.CurrentVolume == 0 {
			if n := counts[p.ID]; n > 0 {
				p.CurrentVolume = math.Round(sums[p.ID] / float64(n))
			} else {
				p.CurrentVolume = fallback
			}
		}
		out[i] = p
	}
	return out
}

// Load reads products and history according to the configured format, or
// returns the demo dataset.
func Load(format, productsFile, historyFile string, demo bool) ([]model.Product, []model.HistoricalObservation, error) {
	if demo {
		products, history := DemoDataset()
		return products, history, nil
	}

	var (
		products []model.Product
		history  []model.HistoricalObservation
		err      error
	)
	switch format {
	case "yaml":
		products, err = LoadProductsYAML(productsFile)
		if err != nil {
			return nil, nil, err
		}
		if historyFile != "" {
			history, err = LoadHistoryYAML(historyFile)
			if err != nil {
				return nil, nil, err
			}
		}
	default:
		products, err = LoadProductsCSV(productsFile)
		if err != nil {
			return nil, nil, err
		}
		if historyFile != "" {
			history, err = LoadHistoryCSV(historyFile)
			if err != nil {
				return nil, nil, err
			}
		}
	}
	return products, history, nil
}
