package model

// FactorCoding maps one factor from natural units to its coded variable:
// coded = (value - Center) / Scale.
type FactorCoding struct {
	Center float64 `json:"center"`
	Scale  float64 `json:"scale"`
}

func (c FactorCoding) Code(v float64) float64 {
	return (v - c.Center) / c.Scale
}

// Coding holds the variable coding of the central composite design. The
// regression operates on coded variables so that coefficient magnitudes are
// comparable across factors.
type Coding struct {
	Time        FactorCoding `json:"time"`
	Temperature FactorCoding `json:"temp"`
	Solvent     FactorCoding `json:"solvent"`
}

// DefaultCoding returns the coding of the extraction study:
// t = (time-110)/60, T = (temp-60)/20, S = (solvent-50)/30.
func DefaultCoding() Coding {
	return Coding{
		Time:        FactorCoding{Center: 110, Scale: 60},
		Temperature: FactorCoding{Center: 60, Scale: 20},
		Solvent:     FactorCoding{Center: 50, Scale: 30},
	}
}

// CodedPoint is a point expressed in coded variables.
type CodedPoint struct {
	Time        float64
	Temperature float64
	Solvent     float64
}

// Code translates a point from natural units into coded variables.
func (c Coding) Code(p Point) CodedPoint {
	return CodedPoint{
		Time:        c.Time.Code(p.Time),
		Temperature: c.Temperature.Code(p.Temperature),
		Solvent:     c.Solvent.Code(p.Solvent),
	}
}
