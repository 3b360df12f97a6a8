package rsm

import (
	"fmt"
	"math"
	"strings"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

const FullQuadratic_ModelType = "full-quadratic"
const ReducedCubic_ModelType = "reduced-cubic"

// Term is one monomial of the response surface polynomial, expressed as
// exponents of the coded variables t (time), T (temperature) and S (solvent).
type Term struct {
	TimeExp    int
	TempExp    int
	SolventExp int
}

// Eval evaluates the term at a coded point.
func (t Term) Eval(p model.CodedPoint) float64 {
	v := 1.0
	if t.TimeExp != 0 {
		v *= math.Pow(p.Time, float64(t.TimeExp))
	}
	if t.TempExp != 0 {
		v *= math.Pow(p.Temperature, float64(t.TempExp))
	}
	if t.SolventExp != 0 {
		v *= math.Pow(p.Solvent, float64(t.SolventExp))
	}
	return v
}

// IsIntercept reports whether the term is the constant term.
func (t Term) IsIntercept() bool {
	return t.TimeExp == 0 && t.TempExp == 0 && t.SolventExp == 0
}

// String returns the compact symbol of the term, e.g. "1", "t^2" or "t^2*S".
func (t Term) String() string {
	if t.IsIntercept() {
		return "1"
	}
	parts := []string{}
	for _, factor := range []struct {
		symbol string
		exp    int
	}{
		{"t", t.TimeExp},
		{"T", t.TempExp},
		{"S", t.SolventExp},
	} {
		switch {
		case factor.exp == 1:
			parts = append(parts, factor.symbol)
		case factor.exp > 1:
			parts = append(parts, fmt.Sprintf("%s^%d", factor.symbol, factor.exp))
		}
	}
	return strings.Join(parts, "*")
}

// FullQuadraticTerms returns the complete second-order polynomial:
// intercept, linear, squared and pairwise interaction terms.
func FullQuadraticTerms() []Term {
	return []Term{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{2, 0, 0},
		{0, 2, 0},
		{0, 0, 2},
		{1, 1, 0},
		{1, 0, 1},
		{0, 1, 1},
	}
}

// ReducedCubicTerms returns the reduced cubic polynomial validated for the
// aloesin extraction study. Third and fourth order terms in time and
// temperature replace the dropped S^2 and T*S terms.
func ReducedCubicTerms() []Term {
	return []Term{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{2, 0, 0},
		{0, 2, 0},
		{1, 1, 0},
		{1, 0, 1},
		{2, 0, 1},
		{1, 2, 0},
		{2, 2, 0},
	}
}

func termsForModelType(modelType string) ([]Term, error) {
	switch modelType {
	case FullQuadratic_ModelType:
		return FullQuadraticTerms(), nil
	case ReducedCubic_ModelType:
		return ReducedCubicTerms(), nil
	default:
		return nil, fmt.Errorf("model type not valid: %q", modelType)
	}
}
