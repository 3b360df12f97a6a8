package rsm

import "fmt"

// InsufficientDataError is returned by Fit when the dataset holds fewer runs
// than the polynomial has coefficients, so the least squares system is
// underdetermined.
type InsufficientDataError struct {
	Runs  int
	Terms int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d runs for a model with %d terms", e.Runs, e.Terms)
}

// FitError wraps a numerical failure of the least squares solver, e.g. a
// singular design matrix built from degenerate data.
type FitError struct {
	ModelType string
	Cause     error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fitting %s model: %v", e.ModelType, e.Cause)
}

func (e *FitError) Unwrap() error {
	return e.Cause
}
