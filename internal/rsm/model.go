package rsm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

// FittedModel is an estimated response surface. It is read-only after Fit;
// all methods are pure and safe for concurrent use.
type FittedModel struct {
	ModelType    string
	Terms        []Term
	Coefficients []float64
	Coding       model.Coding
	Runs         int
	RSquared     float64
	AdjRSquared  float64
	RMSE         float64
}

// Predict evaluates the fitted polynomial at a point given in natural units.
// It applies no bounds: callers that care about extrapolation use PredictIn.
func (m *FittedModel) Predict(p model.Point) float64 {
	coded := m.Coding.Code(p)
	y := 0.0
	for i, term := range m.Terms {
		y += m.Coefficients[i] * term.Eval(coded)
	}
	return y
}

// PredictIn predicts the yield at the point and reports a warning per factor
// that falls outside the design space. Out-of-range queries are never an
// error; the value is returned alongside the warnings.
func (m *FittedModel) PredictIn(space model.DesignSpace, p model.Point) (float64, []model.OutOfRangeWarning) {
	return m.Predict(p), space.Check(p)
}

// Formula renders the fitted equation in coded variables.
func (m *FittedModel) Formula() string {
	var b strings.Builder
	b.WriteString("yield = ")
	for i, term := range m.Terms {
		c := m.Coefficients[i]
		if i == 0 {
			fmt.Fprintf(&b, "%.4g", c)
		} else if c < 0 {
			fmt.Fprintf(&b, " - %.4g", -c)
		} else {
			fmt.Fprintf(&b, " + %.4g", c)
		}
		if !term.IsIntercept() {
			fmt.Fprintf(&b, "*%s", term)
		}
	}
	return b.String()
}

// FactorImpact is the weight of one model term, used to rank which factors
// drive the response.
type FactorImpact struct {
	Term        string  `json:"term"`
	Coefficient float64 `json:"coefficient"`
	Impact      float64 `json:"impact"`
}

// FactorImpacts returns the non-intercept terms ordered by the absolute
// value of their coefficient, largest first. Coded variables make the
// magnitudes directly comparable.
func (m *FittedModel) FactorImpacts() []FactorImpact {
	impacts := []FactorImpact{}
	for i, term := range m.Terms {
		if term.IsIntercept() {
			continue
		}
		c := m.Coefficients[i]
		impact := c
		if impact < 0 {
			impact = -impact
		}
		impacts = append(impacts, FactorImpact{
			Term:        term.String(),
			Coefficient: c,
			Impact:      impact,
		})
	}

	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].Impact > impacts[j].Impact
	})

	return impacts
}

func (m *FittedModel) String() string {
	return fmt.Sprintf("%s model over %d runs, adjR2=%.4f, RMSE=%.4f",
		m.ModelType, m.Runs, m.AdjRSquared, m.RMSE)
}
