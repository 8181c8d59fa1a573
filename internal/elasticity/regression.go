package elasticity

import "math"

// linearFit performs an ordinary least squares fit of y on x and returns the
// slope, intercept, and coefficient of determination. ok is false when x has
// no variance, in which case no line is defined.
func linearFit(xs, ys []float64) (slope, intercept, r2 float64, ok bool) {
	n := float64(len(xs))
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0, 0, 0, false
	}

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return 0, 0, 0, false
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	var ssRes, ssTot float64
	for i := range xs {
		pred := intercept + slope*xs[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		dy := ys[i] - meanY
		ssTot += dy * dy
	}
	if ssTot == 0 {
		// Residuals are zero whenever the fit is exact; a flat series fit by a
		// flat line explains everything there is to explain.
		return slope, intercept, 1, true
	}
	r2 = 1 - ssRes/ssTot
	if math.IsNaN(r2) {
		r2 = 0
	}
	return slope, intercept, r2, true
}
