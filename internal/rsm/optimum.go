package rsm

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

const DefaultOptimumResolution = 41

// FindOptimum locates the process settings with the highest predicted yield
// by exhaustively evaluating the model on a grid of resolution points per
// factor spanning the design space. The traversal order is fixed
// (time, then temperature, then solvent) and ties keep the first point
// visited, so the result is deterministic for a given model and resolution.
func FindOptimum(m *FittedModel, space model.DesignSpace, resolution int) (model.Point, float64) {
	if resolution < 2 {
		resolution = DefaultOptimumResolution
	}

	times := floats.Span(make([]float64, resolution), space.Time.Min, space.Time.Max)
	temperatures := floats.Span(make([]float64, resolution), space.Temperature.Min, space.Temperature.Max)
	solvents := floats.Span(make([]float64, resolution), space.Solvent.Min, space.Solvent.Max)

	var best model.Point
	bestYield := math.Inf(-1)
	for _, time := range times {
		for _, temperature := range temperatures {
			for _, solvent := range solvents {
				p := model.Point{Time: time, Temperature: temperature, Solvent: solvent}
				if y := m.Predict(p); y > bestYield {
					best = p
					bestYield = y
				}
			}
		}
	}

	return best, bestYield
}
