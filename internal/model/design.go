package model

import "fmt"

// Point is a location in the process variable space, in natural units:
// extraction time in minutes, temperature in °C, solvent concentration in %.
type Point struct {
	Time        float64 `json:"time"`
	Temperature float64 `json:"temp"`
	Solvent     float64 `json:"solvent"`
}

// Value returns the coordinate of the point for the given factor.
func (p Point) Value(f Factor) float64 {
	switch f {
	case FactorTime:
		return p.Time
	case FactorTemperature:
		return p.Temperature
	default:
		return p.Solvent
	}
}

// ExperimentRun is a single observed extraction run: process settings plus
// the measured aloesin yield in mg/L.
type ExperimentRun struct {
	Time        float64
	Temperature float64
	Solvent     float64
	Yield       float64
}

// Point returns the process settings of the run.
func (r ExperimentRun) Point() Point {
	return Point{Time: r.Time, Temperature: r.Temperature, Solvent: r.Solvent}
}

// Range is a closed interval of admissible values for one factor.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) Width() float64 {
	return r.Max - r.Min
}

// DesignSpace holds the admissible range per factor. Fitted models stay
// meaningful inside it; predictions outside are extrapolations.
type DesignSpace struct {
	Time        Range `json:"time"`
	Temperature Range `json:"temp"`
	Solvent     Range `json:"solvent"`
}

// DefaultDesignSpace returns the central composite rotatable design region
// of the extraction study: time 10-210 min, temperature 25-95 °C,
// solvent 0-100 %.
func DefaultDesignSpace() DesignSpace {
	return DesignSpace{
		Time:        Range{Min: 10, Max: 210},
		Temperature: Range{Min: 25, Max: 95},
		Solvent:     Range{Min: 0, Max: 100},
	}
}

// Range returns the admissible range for the given factor.
func (ds DesignSpace) Range(f Factor) Range {
	switch f {
	case FactorTime:
		return ds.Time
	case FactorTemperature:
		return ds.Temperature
	default:
		return ds.Solvent
	}
}

// Contains reports whether the point lies inside the design space.
func (ds DesignSpace) Contains(p Point) bool {
	return len(ds.Check(p)) == 0
}

// Check returns one warning per factor whose value falls outside the design
// space. An empty slice means the point is inside.
func (ds DesignSpace) Check(p Point) []OutOfRangeWarning {
	warnings := []OutOfRangeWarning{}
	for _, factor := range AllFactors() {
		r := ds.Range(factor)
		v := p.Value(factor)
		if !r.Contains(v) {
			warnings = append(warnings, OutOfRangeWarning{
				Factor: factor,
				Value:  v,
				Min:    r.Min,
				Max:    r.Max,
			})
		}
	}
	return warnings
}

// OutOfRangeWarning flags a query value outside the fitted design space.
// It is advisory: predictions are still produced, but as extrapolations.
type OutOfRangeWarning struct {
	Factor Factor  `json:"factor"`
	Value  float64 `json:"value"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func (w OutOfRangeWarning) String() string {
	return fmt.Sprintf("%s value %g is outside the fitted range [%g, %g]; the prediction is an extrapolation",
		w.Factor.Label(), w.Value, w.Min, w.Max)
}
