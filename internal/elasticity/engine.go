// Package elasticity estimates own-price and cross-price demand elasticities
// from historical price/volume observations. One engine run produces an
// immutable model set; failures are isolated per product so one bad series
// never aborts estimation for the rest of the catalog.
package elasticity

import (
	"fmt"
	"math"
	"sort"

	"github.com/pricelab/pricing-sim/internal/model"
	"github.com/pricelab/pricing-sim/pkg/constants"
	"go.uber.org/zap"
)

// Engine fits elasticity models. It holds no mutable state across calls.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs an Engine with the provided logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// OwnPrice estimates the own-price elasticity of a product from its
// observations using the requested method. MethodManual is not an estimation
// and is rejected here; use Manual instead.
func (e *Engine) OwnPrice(productID string, obs []model.HistoricalObservation, method model.Method) (model.ElasticityModel, error) {
	switch method {
	case model.MethodLogLog:
		return e.logLog(productID, obs)
	case model.MethodArc:
		return e.arc(productID, obs)
	case model.MethodManual:
		return model.ElasticityModel{}, fmt.Errorf("method %s requires a caller-supplied value", model.MethodManual)
	default:
		return model.ElasticityModel{}, fmt.Errorf("unsupported elasticity method %q", method)
	}
}

// Manual wraps a caller-supplied elasticity in a model; no estimation is
// performed and no fit quality is reported.
func (e *Engine) Manual(productID string, value float64) model.ElasticityModel {
	return model.ElasticityModel{
		ProductID: productID,
		OwnPrice:  value,
		Method:    model.MethodManual,
		Valid:     true,
	}
}

// logLog regresses ln(volume) on ln(price); the slope is the elasticity.
// Observations with non-positive price or volume are excluded from the fit.
func (e *Engine) logLog(productID string, obs []model.HistoricalObservation) (model.ElasticityModel, error) {
	var lnPrice, lnVolume []float64
	for _, o := range obs {
		if o.Price <= 0 || o.Volume <= 0 {
			continue
		}
		lnPrice = append(lnPrice, math.Log(o.Price))
		lnVolume = append(lnVolume, math.Log(o.Volume))
	}
	if len(lnPrice) < constants.MinRegressionPoints {
		return model.ElasticityModel{}, &model.InsufficientDataError{
			ProductID: productID,
			Usable:    len(lnPrice),
			Needed:    constants.MinRegressionPoints,
		}
	}

	slope, _, r2, ok := linearFit(lnPrice, lnVolume)
	if !ok {
		return model.ElasticityModel{}, &model.DegenerateDataError{
			ProductID: productID,
			Reason:    "all observed prices are identical",
		}
	}

	return model.ElasticityModel{
		ProductID: productID,
		OwnPrice:  slope,
		Method:    model.MethodLogLog,
		RSquared:  &r2,
		Valid:     true,
	}, nil
}

// arc applies the midpoint formula to the observations with minimum and
// maximum price: (dQ / mean(Q)) / (dP / mean(P)). The formula is symmetric
// with respect to the direction of the price change.
func (e *Engine) arc(productID string, obs []model.HistoricalObservation) (model.ElasticityModel, error) {
	var usable []model.HistoricalObservation
	for _, o := range obs {
		if o.Price > 0 && o.Volume >= 0 {
			usable = append(usable, o)
		}
	}
	if len(usable) < 2 {
		return model.ElasticityModel{}, &model.InsufficientDataError{
			ProductID: productID,
			Usable:    len(usable),
			Needed:    2,
		}
	}

	lo, hi := usable[0], usable[0]
	for _, o := range usable[1:] {
		if o.Price < lo.Price {
			lo = o
		}
		if o.Price > hi.Price {
			hi = o
		}
	}
	if lo.Price == hi.Price {
		return model.ElasticityModel{}, &model.DegenerateDataError{
			ProductID: productID,
			Reason:    "price extremes are identical",
		}
	}

	meanQ := (lo.Volume + hi.Volume) / 2
	meanP := (lo.Price + hi.Price) / 2
	if meanQ == 0 {
		return model.ElasticityModel{}, &model.DegenerateDataError{
			ProductID: productID,
			Reason:    "mean volume at the price extremes is zero",
		}
	}

	elasticity := ((hi.Volume - lo.Volume) / meanQ) / ((hi.Price - lo.Price) / meanP)

	return model.ElasticityModel{
		ProductID: productID,
		OwnPrice:  elasticity,
		Method:    model.MethodArc,
		Valid:     true,
	}, nil
}

// Cross estimates the cross-price elasticity of product i's volume with
// respect to product j's price by regressing ln(volume_i) on ln(price_j)
// over period-aligned observation pairs. ok is false when fewer than two
// aligned pairs with distinct prices exist; the pair is then omitted from the
// model rather than defaulted to zero.
func (e *Engine) Cross(obsI, obsJ []model.HistoricalObservation) (float64, bool) {
	priceJ := make(map[string]float64, len(obsJ))
	for _, o := range obsJ {
		if o.Price > 0 {
			priceJ[o.Period] = o.Price
		}
	}

	var lnP, lnV []float64
	for _, o := range obsI {
		if o.Volume <= 0 {
			continue
		}
		p, aligned := priceJ[o.Period]
		if !aligned {
			continue
		}
		lnP = append(lnP, math.Log(p))
		lnV = append(lnV, math.Log(o.Volume))
	}
	if len(lnP) < constants.MinRegressionPoints {
		return 0, false
	}

	slope, _, _, ok := linearFit(lnP, lnV)
	if !ok {
		return 0, false
	}
	return slope, true
}

// CalculateAll estimates a full model set over the snapshot: own-price
// elasticity for every product (overrides bypass regression and are marked
// manual) and, when estimateCross is set, cross terms for every ordered pair
// with enough aligned history. Products whose estimation fails are carried
// as invalid models so callers can tell "estimation failed" from "never
// attempted".
func (e *Engine) CalculateAll(products []model.Product, observations map[string][]model.HistoricalObservation, method model.Method, overrides map[string]float64, estimateCross bool) map[string]model.ElasticityModel {
	models := make(map[string]model.ElasticityModel, len(products))

	for _, p := range products {
		if value, ok := overrides[p.ID]; ok {
			models[p.ID] = e.Manual(p.ID, value)
			continue
		}

		m, err := e.OwnPrice(p.ID, observations[p.ID], method)
		if err != nil {
			e.logger.Warn("elasticity estimation failed",
				zap.String("op", "elasticity.CalculateAll"),
				zap.String("product", p.ID),
				zap.Error(err),
			)
			models[p.ID] = model.ElasticityModel{ProductID: p.ID, Method: method, Valid: false}
			continue
		}
		models[p.ID] = m
	}

	if estimateCross {
		ids := make([]string, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		sort.Strings(ids)

		for _, i := range ids {
			mi := models[i]
			if !mi.Valid {
				continue
			}
			for _, j := range ids {
				if i == j {
					continue
				}
				coef, ok := e.Cross(observations[i], observations[j])
				if !ok {
					continue
				}
				if mi.Cross == nil {
					mi.Cross = make(map[string]float64)
				}
				mi.Cross[j] = coef
			}
			models[i] = mi
		}
	}

	e.logger.Debug("elasticity model set calculated",
		zap.String("op", "elasticity.CalculateAll"),
		zap.Int("products", len(products)),
		zap.String("method", string(method)),
	)

	return models
}
