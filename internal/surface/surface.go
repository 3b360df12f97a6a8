package surface

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/rsm"
)

// DefaultResolution is the grid resolution of the dashboard surfaces.
const DefaultResolution = 40

// SliceType selects which factor is held fixed while the other two span the
// surface axes.
type SliceType int

const (
	FixedSolvent SliceType = iota
	FixedTemperature
	FixedTime
)

// String returns the key of the fixed factor: "solvent"/"temp"/"time".
func (s SliceType) String() string {
	switch s {
	case FixedSolvent:
		return model.FactorSolvent.String()
	case FixedTemperature:
		return model.FactorTemperature.String()
	case FixedTime:
		return model.FactorTime.String()
	default:
		return "unknown"
	}
}

// ParseSliceType resolves a fixed-factor key to its slice type.
func ParseSliceType(key string) (SliceType, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "solvent":
		return FixedSolvent, nil
	case "temp", "temperature":
		return FixedTemperature, nil
	case "time":
		return FixedTime, nil
	default:
		return 0, fmt.Errorf("unknown surface slice type: %q", key)
	}
}

// Marshal as a JSON string: "solvent"/"temp"/"time"
func (s SliceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Accept either JSON strings ("solvent") or numbers (0/1/2)
func (s *SliceType) UnmarshalJSON(b []byte) error {
	// string path
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		parsed, err := ParseSliceType(strings.Trim(string(b), `"`))
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}
	// numeric path
	var i int
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}
	switch v := SliceType(i); v {
	case FixedSolvent, FixedTemperature, FixedTime:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid SliceType numeric value: %d", i)
	}
}

// SurfaceData is a render-ready yield grid for one slice through the fitted
// surface. Z[i][j] holds the predicted yield at Y[i] (rows) and X[j]
// (columns), the layout 3D surface renderers expect. No drawing happens
// here; the visualization frontend owns that.
type SurfaceData struct {
	Slice      SliceType   `json:"slice"`
	FixedValue float64     `json:"fixedValue"`
	XLabel     string      `json:"xLabel"`
	YLabel     string      `json:"yLabel"`
	ZLabel     string      `json:"zLabel"`
	X          []float64   `json:"x"`
	Y          []float64   `json:"y"`
	Z          [][]float64 `json:"z"`
	MaxYield   float64     `json:"maxYield"`
	MaxPoint   model.Point `json:"maxPoint"`
}

// Build evaluates the fitted model over a resolution x resolution grid
// spanning the given space, holding the sliced factor at the fixed value.
// It also tracks the highest yield in view and where it occurs.
func Build(m *rsm.FittedModel, space model.DesignSpace, slice SliceType, fixed float64,
	resolution int) (*SurfaceData, error) {
	if resolution < 2 {
		resolution = DefaultResolution
	}

	var xAxis, yAxis model.Factor
	var at func(x, y float64) model.Point
	switch slice {
	case FixedSolvent:
		xAxis, yAxis = model.FactorTemperature, model.FactorTime
		at = func(x, y float64) model.Point {
			return model.Point{Time: y, Temperature: x, Solvent: fixed}
		}
	case FixedTemperature:
		xAxis, yAxis = model.FactorSolvent, model.FactorTime
		at = func(x, y float64) model.Point {
			return model.Point{Time: y, Temperature: fixed, Solvent: x}
		}
	case FixedTime:
		xAxis, yAxis = model.FactorTemperature, model.FactorSolvent
		at = func(x, y float64) model.Point {
			return model.Point{Time: fixed, Temperature: x, Solvent: y}
		}
	default:
		return nil, fmt.Errorf("unknown surface slice type: %d", slice)
	}

	xRange := space.Range(xAxis)
	yRange := space.Range(yAxis)
	xs := floats.Span(make([]float64, resolution), xRange.Min, xRange.Max)
	ys := floats.Span(make([]float64, resolution), yRange.Min, yRange.Max)

	z := make([][]float64, len(ys))
	maxYield := math.Inf(-1)
	var maxPoint model.Point
	for i, y := range ys {
		row := make([]float64, len(xs))
		for j, x := range xs {
			p := at(x, y)
			v := m.Predict(p)
			row[j] = v
			if v > maxYield {
				maxYield = v
				maxPoint = p
			}
		}
		z[i] = row
	}

	return &SurfaceData{
		Slice:      slice,
		FixedValue: fixed,
		XLabel:     xAxis.Label(),
		YLabel:     yAxis.Label(),
		ZLabel:     "Yield (mg/L)",
		X:          xs,
		Y:          ys,
		Z:          z,
		MaxYield:   maxYield,
		MaxPoint:   maxPoint,
	}, nil
}
