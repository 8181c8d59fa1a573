package model

// ConstraintKind enumerates the supported business rules.
type ConstraintKind string

const (
	// ConstraintMaxIncrease limits the fractional price increase.
	ConstraintMaxIncrease ConstraintKind = "max_increase"

	// ConstraintMaxDecrease limits the fractional price decrease.
	ConstraintMaxDecrease ConstraintKind = "max_decrease"

	// ConstraintMinMargin requires the simulated margin to stay at or above
	// the threshold.
	ConstraintMinMargin ConstraintKind = "min_margin"
)

// ConstraintScope determines which products a constraint applies to.
type ConstraintScope string

const (
	// ScopeProduct applies the constraint to a single product.
	ScopeProduct ConstraintScope = "product"

	// ScopeGlobal applies the constraint to every product in the scenario.
	ScopeGlobal ConstraintScope = "global"
)

// Constraint is one business rule. The registry of constraints is immutable
// during a simulation or optimization run.
type Constraint struct {
	Scope     ConstraintScope `yaml:"scope" json:"scope"`
	ProductID string          `yaml:"productId,omitempty" json:"product_id,omitempty"` // required for ScopeProduct
	Kind      ConstraintKind  `yaml:"kind" json:"kind"`
	Threshold float64         `yaml:"threshold" json:"threshold"`
}

// Violation describes one failed constraint check.
type Violation struct {
	Constraint Constraint `json:"constraint"`
	ProductID  string     `json:"product_id"`
	Actual     float64    `json:"actual"`
	Message    string     `json:"message"`
}
