package model

import "fmt"

// InsufficientDataError reports that too few usable historical points remain
// for a product after filtering invalid observations.
type InsufficientDataError struct {
	ProductID string
	Usable    int
	Needed    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("product %s: %d usable observations, need at least %d",
		e.ProductID, e.Usable, e.Needed)
}

// DegenerateDataError reports that a product's observations carry no price
// variance, so no elasticity can be estimated.
type DegenerateDataError struct {
	ProductID string
	Reason    string
}

func (e *DegenerateDataError) Error() string {
	return fmt.Sprintf("product %s: degenerate observations: %s", e.ProductID, e.Reason)
}

// UnknownProductError reports a scenario or constraint referencing an
// identifier missing from the active snapshot.
type UnknownProductError struct {
	ProductID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %s", e.ProductID)
}

// ConstraintViolationError is returned only on strict validation, carrying
// every violation found.
type ConstraintViolationError struct {
	Violations []Violation
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("scenario violates %d constraint(s)", len(e.Violations))
}
