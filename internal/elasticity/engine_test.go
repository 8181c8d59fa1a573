package elasticity

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/pricelab/pricing-sim/internal/model"
)

// powerLawObservations generates volume = k * price^e, which log-log
// regression should recover exactly.
func powerLawObservations(productID string, k, e float64, prices []float64) []model.HistoricalObservation {
	obs := make([]model.HistoricalObservation, 0, len(prices))
	for i, p := range prices {
		obs = append(obs, model.HistoricalObservation{
			ProductID: productID,
			Period:    periodLabel(i),
			Price:     p,
			Volume:    k * math.Pow(p, e),
		})
	}
	return obs
}

func periodLabel(i int) string {
	return string(rune('A' + i))
}

func TestLogLogRecoversKnownElasticity(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	cases := []struct {
		name       string
		elasticity float64
	}{
		{"elastic", -1.2},
		{"inelastic", -0.5},
		{"strongly elastic", -2.5},
		{"positive", 0.8},
	}

	prices := []float64{8, 9, 10, 11, 12}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obs := powerLawObservations("P1", 1000, tc.elasticity, prices)
			m, err := engine.OwnPrice("P1", obs, model.MethodLogLog)
			if err != nil {
				t.Fatalf("OwnPrice returned error: %v", err)
			}
			if math.Abs(m.OwnPrice-tc.elasticity) > 1e-3 {
				t.Errorf("expected elasticity %v, got %v", tc.elasticity, m.OwnPrice)
			}
			if m.RSquared == nil {
				t.Fatal("expected R² to be reported for log_log")
			}
			if math.Abs(*m.RSquared-1) > 1e-6 {
				t.Errorf("expected R² ~ 1 for exact power law, got %v", *m.RSquared)
			}
			if m.Method != model.MethodLogLog {
				t.Errorf("expected method %s, got %s", model.MethodLogLog, m.Method)
			}
			if !m.Valid {
				t.Error("expected model to be valid")
			}
		})
	}
}

func TestLogLogExcludesNonPositiveVolumes(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	obs := powerLawObservations("P1", 1000, -1.0, []float64{8, 10, 12})
	obs = append(obs,
		model.HistoricalObservation{ProductID: "P1", Period: "X", Price: 9, Volume: 0},
		model.HistoricalObservation{ProductID: "P1", Period: "Y", Price: 11, Volume: -5},
	)

	m, err := engine.OwnPrice("P1", obs, model.MethodLogLog)
	if err != nil {
		t.Fatalf("OwnPrice returned error: %v", err)
	}
	if math.Abs(m.OwnPrice+1.0) > 1e-3 {
		t.Errorf("invalid volumes should be excluded, not clamped; got elasticity %v", m.OwnPrice)
	}
}

func TestLogLogInsufficientData(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	cases := []struct {
		name string
		obs  []model.HistoricalObservation
	}{
		{"no observations", nil},
		{"single point", powerLawObservations("P1", 1000, -1, []float64{10})},
		{"all volumes zero", []model.HistoricalObservation{
			{ProductID: "P1", Period: "A", Price: 10, Volume: 0},
			{ProductID: "P1", Period: "B", Price: 12, Volume: 0},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.OwnPrice("P1", tc.obs, model.MethodLogLog)
			var insufficient *model.InsufficientDataError
			if !errors.As(err, &insufficient) {
				t.Fatalf("expected InsufficientDataError, got %v", err)
			}
		})
	}
}

func TestLogLogDegenerateData(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	obs := []model.HistoricalObservation{
		{ProductID: "P1", Period: "A", Price: 10, Volume: 900},
		{ProductID: "P1", Period: "B", Price: 10, Volume: 1100},
		{ProductID: "P1", Period: "C", Price: 10, Volume: 1000},
	}

	_, err := engine.OwnPrice("P1", obs, model.MethodLogLog)
	var degenerate *model.DegenerateDataError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateDataError for zero price variance, got %v", err)
	}
}

func TestArcElasticityClosedForm(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	// (P1,Q1) = (10, 1000), (P2,Q2) = (12, 800)
	obs := []model.HistoricalObservation{
		{ProductID: "P1", Period: "A", Price: 10, Volume: 1000},
		{ProductID: "P1", Period: "B", Price: 12, Volume: 800},
	}

	m, err := engine.OwnPrice("P1", obs, model.MethodArc)
	if err != nil {
		t.Fatalf("OwnPrice returned error: %v", err)
	}

	expected := ((800.0 - 1000.0) / 900.0) / ((12.0 - 10.0) / 11.0)
	if math.Abs(m.OwnPrice-expected) > 1e-12 {
		t.Errorf("expected midpoint elasticity %v, got %v", expected, m.OwnPrice)
	}
	if m.RSquared != nil {
		t.Error("arc method must not report a fit quality")
	}
	if m.Method != model.MethodArc {
		t.Errorf("expected method %s, got %s", model.MethodArc, m.Method)
	}
}

func TestArcUsesPriceExtremes(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	// Middle observations must not influence the arc estimate.
	obs := []model.HistoricalObservation{
		{ProductID: "P1", Period: "A", Price: 11, Volume: 12345},
		{ProductID: "P1", Period: "B", Price: 10, Volume: 1000},
		{ProductID: "P1", Period: "C", Price: 12, Volume: 800},
	}

	m, err := engine.OwnPrice("P1", obs, model.MethodArc)
	if err != nil {
		t.Fatalf("OwnPrice returned error: %v", err)
	}
	expected := ((800.0 - 1000.0) / 900.0) / ((12.0 - 10.0) / 11.0)
	if math.Abs(m.OwnPrice-expected) > 1e-12 {
		t.Errorf("expected %v from the price extremes, got %v", expected, m.OwnPrice)
	}
}

func TestArcDegenerateWhenExtremesShareAPrice(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	obs := []model.HistoricalObservation{
		{ProductID: "P1", Period: "A", Price: 10, Volume: 1000},
		{ProductID: "P1", Period: "B", Price: 10, Volume: 800},
	}

	_, err := engine.OwnPrice("P1", obs, model.MethodArc)
	var degenerate *model.DegenerateDataError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateDataError, got %v", err)
	}
}

func TestManualMethodRequiresValue(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	if _, err := engine.OwnPrice("P1", nil, model.MethodManual); err == nil {
		t.Fatal("expected error when manual method is used without a value")
	}

	m := engine.Manual("P1", -1.7)
	if m.OwnPrice != -1.7 || m.Method != model.MethodManual || !m.Valid {
		t.Errorf("unexpected manual model: %+v", m)
	}
	if m.RSquared != nil {
		t.Error("manual models must not report a fit quality")
	}
}

func TestCrossElasticityAlignedByPeriod(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	// Volume of i follows price of j with a known cross coefficient.
	pricesJ := []float64{8, 9, 10, 11, 12}
	var obsI, obsJ []model.HistoricalObservation
	for k, pj := range pricesJ {
		period := periodLabel(k)
		obsJ = append(obsJ, model.HistoricalObservation{ProductID: "J", Period: period, Price: pj, Volume: 100})
		obsI = append(obsI, model.HistoricalObservation{ProductID: "I", Period: period, Price: 20, Volume: 500 * math.Pow(pj, 0.3)})
	}

	coef, ok := engine.Cross(obsI, obsJ)
	if !ok {
		t.Fatal("expected cross term to be estimated")
	}
	if math.Abs(coef-0.3) > 1e-3 {
		t.Errorf("expected cross elasticity 0.3, got %v", coef)
	}
}

func TestCrossElasticityOmittedWithoutAlignment(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	cases := []struct {
		name string
		obsI []model.HistoricalObservation
		obsJ []model.HistoricalObservation
	}{
		{
			"no shared periods",
			[]model.HistoricalObservation{{ProductID: "I", Period: "A", Price: 20, Volume: 100}},
			[]model.HistoricalObservation{{ProductID: "J", Period: "B", Price: 10, Volume: 100}},
		},
		{
			"single aligned pair",
			[]model.HistoricalObservation{{ProductID: "I", Period: "A", Price: 20, Volume: 100}},
			[]model.HistoricalObservation{{ProductID: "J", Period: "A", Price: 10, Volume: 100}},
		},
		{
			"no variance in the other price",
			[]model.HistoricalObservation{
				{ProductID: "I", Period: "A", Price: 20, Volume: 100},
				{ProductID: "I", Period: "B", Price: 20, Volume: 120},
			},
			[]model.HistoricalObservation{
				{ProductID: "J", Period: "A", Price: 10, Volume: 100},
				{ProductID: "J", Period: "B", Price: 10, Volume: 100},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := engine.Cross(tc.obsI, tc.obsJ); ok {
				t.Error("expected cross term to be omitted, not estimated")
			}
		})
	}
}

func TestCalculateAllIsolatesFailures(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	products := []model.Product{
		{ID: "GOOD", CurrentPrice: 10, CurrentVolume: 100},
		{ID: "BAD", CurrentPrice: 10, CurrentVolume: 100},
		{ID: "OVERRIDE", CurrentPrice: 10, CurrentVolume: 100},
	}
	observations := map[string][]model.HistoricalObservation{
		"GOOD": powerLawObservations("GOOD", 1000, -1.1, []float64{8, 10, 12}),
		"BAD":  {{ProductID: "BAD", Period: "A", Price: 10, Volume: 100}},
	}
	overrides := map[string]float64{"OVERRIDE": -0.9}

	models := engine.CalculateAll(products, observations, model.MethodLogLog, overrides, false)

	good, ok := models["GOOD"]
	if !ok || !good.Valid {
		t.Fatalf("expected a valid model for GOOD, got %+v", good)
	}
	if math.Abs(good.OwnPrice+1.1) > 1e-3 {
		t.Errorf("expected GOOD elasticity -1.1, got %v", good.OwnPrice)
	}

	bad, ok := models["BAD"]
	if !ok {
		t.Fatal("failed products must still appear in the set, marked invalid")
	}
	if bad.Valid {
		t.Error("expected BAD model to be invalid")
	}

	manual, ok := models["OVERRIDE"]
	if !ok || manual.Method != model.MethodManual || manual.OwnPrice != -0.9 {
		t.Errorf("expected manual override model, got %+v", manual)
	}
}

func TestCalculateAllEstimatesCrossTerms(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	products := []model.Product{
		{ID: "I", CurrentPrice: 20, CurrentVolume: 100},
		{ID: "J", CurrentPrice: 10, CurrentVolume: 100},
	}
	pricesJ := []float64{8, 9, 10, 11, 12}
	observations := map[string][]model.HistoricalObservation{}
	for k, pj := range pricesJ {
		period := periodLabel(k)
		observations["J"] = append(observations["J"], model.HistoricalObservation{
			ProductID: "J", Period: period, Price: pj, Volume: 1000 * math.Pow(pj, -1),
		})
		// I's own price varies too so its own model fits.
		pi := 18.0 + float64(k)
		observations["I"] = append(observations["I"], model.HistoricalObservation{
			ProductID: "I", Period: period, Price: pi, Volume: 500 * math.Pow(pi, -1.2) * math.Pow(pj, 0.3),
		})
	}

	models := engine.CalculateAll(products, observations, model.MethodLogLog, nil, true)

	mi := models["I"]
	if !mi.Valid {
		t.Fatalf("expected valid model for I, got %+v", mi)
	}
	if _, ok := mi.CrossTerm("J"); !ok {
		t.Fatal("expected cross term I with respect to J")
	}
	if _, ok := mi.CrossTerm("I"); ok {
		t.Error("a product must not carry a cross term on itself")
	}
}
