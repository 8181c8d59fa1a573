package model

// Method identifies how an elasticity value was estimated.
type Method string

const (
	// MethodLogLog fits ln(volume) on ln(price); the slope is the elasticity.
	MethodLogLog Method = "log_log"

	// MethodArc applies the midpoint formula to the min/max price observations.
	MethodArc Method = "arc"

	// MethodManual takes a caller-supplied elasticity with no estimation.
	MethodManual Method = "manual"
)

// ValidMethod reports whether m names a supported estimation method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodLogLog, MethodArc, MethodManual:
		return true
	}
	return false
}

// ElasticityModel is the immutable result of estimating one product's
// demand response. Cross holds cross-price elasticities keyed by the other
// product's id; a missing key means the pair was never estimated, which is
// distinct from an estimated coefficient near zero.
type ElasticityModel struct {
	ProductID string             `json:"product_id"`
	OwnPrice  float64            `json:"own_price_elasticity"`
	Cross     map[string]float64 `json:"cross_price_elasticity,omitempty"`
	Method    Method             `json:"method"`
	RSquared  *float64           `json:"r_squared,omitempty"` // only set for log_log
	Valid     bool               `json:"valid"`
}

// CrossTerm returns the cross-price elasticity of this product with respect
// to other, and whether that pair was estimated at all.
func (m ElasticityModel) CrossTerm(other string) (float64, bool) {
	v, ok := m.Cross[other]
	return v, ok
}
