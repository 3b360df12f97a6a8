package rsm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

// fitParaboloid fits a quadratic surface with its peak at the given point,
// so the analytic optimum is known exactly.
func fitParaboloid(t *testing.T, peak model.Point, height float64) *FittedModel {
	t.Helper()

	coding := model.DefaultCoding()
	top := coding.Code(peak)
	f := func(p model.Point) float64 {
		coded := coding.Code(p)
		dt := coded.Time - top.Time
		dT := coded.Temperature - top.Temperature
		dS := coded.Solvent - top.Solvent
		return height - dt*dt - dT*dT - dS*dS
	}
	runs := gridRuns(f, []float64{50, 110, 170}, []float64{40, 60, 80}, []float64{20, 50, 80})

	fitted, err := Fit(runs, WithModelType(FullQuadratic_ModelType))
	require.NoError(t, err)
	return fitted
}

func TestFindOptimumRecoversCenterPeak(t *testing.T) {
	center := model.Point{Time: 110, Temperature: 60, Solvent: 50}
	fitted := fitParaboloid(t, center, 50)

	best, yield := FindOptimum(fitted, model.DefaultDesignSpace(), 41)

	assert.InDelta(t, center.Time, best.Time, 1e-9)
	assert.InDelta(t, center.Temperature, best.Temperature, 1e-9)
	assert.InDelta(t, center.Solvent, best.Solvent, 1e-9)
	assert.InDelta(t, 50, yield, 1e-9)
}

func TestFindOptimumWithinOneGridStep(t *testing.T) {
	peak := model.Point{Time: 101.3, Temperature: 57.7, Solvent: 48.3}
	fitted := fitParaboloid(t, peak, 50)
	space := model.DefaultDesignSpace()

	resolution := 41
	best, yield := FindOptimum(fitted, space, resolution)

	timeStep := space.Time.Width() / float64(resolution-1)
	temperatureStep := space.Temperature.Width() / float64(resolution-1)
	solventStep := space.Solvent.Width() / float64(resolution-1)

	assert.LessOrEqual(t, math.Abs(best.Time-peak.Time), timeStep+1e-9)
	assert.LessOrEqual(t, math.Abs(best.Temperature-peak.Temperature), temperatureStep+1e-9)
	assert.LessOrEqual(t, math.Abs(best.Solvent-peak.Solvent), solventStep+1e-9)
	assert.LessOrEqual(t, yield, 50+1e-9)
}

// exactModel builds a fitted model with the given coefficients directly, so
// surfaces with exact ties are not blurred by least squares round-off.
func exactModel(coefficients []float64) *FittedModel {
	return &FittedModel{
		ModelType:    FullQuadratic_ModelType,
		Terms:        FullQuadraticTerms(),
		Coefficients: coefficients,
		Coding:       model.DefaultCoding(),
		Runs:         27,
	}
}

func TestFindOptimumTiesKeepFirstVisitedPoint(t *testing.T) {
	// A constant surface ties everywhere, so the first grid point wins.
	fitted := exactModel([]float64{7, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	best, yield := FindOptimum(fitted, model.DefaultDesignSpace(), 41)

	assert.Equal(t, model.Point{Time: 10, Temperature: 25, Solvent: 0}, best)
	assert.InDelta(t, 7, yield, 1e-12)
}

func TestFindOptimumBoundaryMaximum(t *testing.T) {
	// Yield strictly increasing in time and flat elsewhere: the maximum sits
	// on the time boundary and the remaining ties keep the first points.
	fitted := exactModel([]float64{0, 1, 0, 0, 0, 0, 0, 0, 0, 0})

	best, yield := FindOptimum(fitted, model.DefaultDesignSpace(), 41)

	assert.Equal(t, model.Point{Time: 210, Temperature: 25, Solvent: 0}, best)
	assert.InDelta(t, 100.0/60.0, yield, 1e-12)
}

func TestFindOptimumDefaultResolution(t *testing.T) {
	center := model.Point{Time: 110, Temperature: 60, Solvent: 50}
	fitted := fitParaboloid(t, center, 50)

	best, _ := FindOptimum(fitted, model.DefaultDesignSpace(), 0)

	assert.InDelta(t, center.Time, best.Time, 1e-9)
	assert.InDelta(t, center.Temperature, best.Temperature, 1e-9)
	assert.InDelta(t, center.Solvent, best.Solvent, 1e-9)
}

func TestFindOptimumNarrowedSpace(t *testing.T) {
	peak := model.Point{Time: 101.3, Temperature: 57.7, Solvent: 48.3}
	fitted := fitParaboloid(t, peak, 50)

	space := model.DefaultDesignSpace()
	space.Time = model.Range{Min: 150, Max: 210}

	best, _ := FindOptimum(fitted, space, 41)

	// The peak lies left of the narrowed interval, so the search clamps to
	// its lower edge.
	assert.InDelta(t, 150, best.Time, 1e-9)
	assert.True(t, space.Contains(best))
}

func TestFindOptimumPredictsDocumentedEthanolOptimum(t *testing.T) {
	// Surrogate surface shaped like the published ethanol-water response:
	// maximum near 93 min and 56 °C with no co-solvent, at about 48 mg/L.
	coding := model.DefaultCoding()
	top := coding.Code(model.Point{Time: 92.9, Temperature: 55.9, Solvent: 0})
	f := func(p model.Point) float64 {
		coded := coding.Code(p)
		dt := coded.Time - top.Time
		dT := coded.Temperature - top.Temperature
		return 48 - 6*dt*dt - 8*dT*dT - 2.4*(coded.Solvent-top.Solvent)
	}
	runs := gridRuns(f, []float64{50, 90, 130, 170}, []float64{40, 55, 65, 80}, []float64{20, 50, 80})

	fitted, err := Fit(runs)
	require.NoError(t, err)

	predicted := fitted.Predict(model.Point{Time: 92.9, Temperature: 55.9, Solvent: 0})
	assert.InDelta(t, 48, predicted, 1)

	best, yield := FindOptimum(fitted, model.DefaultDesignSpace(), 41)
	assert.InDelta(t, 92.9, best.Time, 5+1e-9)
	assert.InDelta(t, 55.9, best.Temperature, 1.75+1e-9)
	assert.InDelta(t, 0, best.Solvent, 1e-9)
	assert.InDelta(t, 48, yield, 1.5)
}
