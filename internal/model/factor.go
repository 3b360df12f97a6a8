package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Factor identifies one of the three extraction process variables.
type Factor int

const (
	FactorTime Factor = iota
	FactorTemperature
	FactorSolvent
)

// AllFactors returns the factors in canonical order: time, temperature, solvent.
func AllFactors() []Factor {
	return []Factor{FactorTime, FactorTemperature, FactorSolvent}
}

// String returns the short key used in datasets and API payloads.
func (f Factor) String() string {
	switch f {
	case FactorTime:
		return "time"
	case FactorTemperature:
		return "temp"
	case FactorSolvent:
		return "solvent"
	default:
		return "unknown"
	}
}

// Label returns the display label with units.
func (f Factor) Label() string {
	switch f {
	case FactorTime:
		return "Time (min)"
	case FactorTemperature:
		return "Temperature (°C)"
	case FactorSolvent:
		return "Solvent (%)"
	default:
		return "Unknown"
	}
}

// Marshal as a JSON string: "time"/"temp"/"solvent"
func (f Factor) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// Accept either JSON strings ("temp") or numbers (0/1/2)
func (f *Factor) UnmarshalJSON(b []byte) error {
	// string path
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		s := strings.Trim(string(b), `"`)
		switch strings.ToLower(s) {
		case "time":
			*f = FactorTime
		case "temp", "temperature":
			*f = FactorTemperature
		case "solvent":
			*f = FactorSolvent
		default:
			return fmt.Errorf("invalid Factor: %q", s)
		}
		return nil
	}
	// numeric path
	var i int
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}
	switch v := Factor(i); v {
	case FactorTime, FactorTemperature, FactorSolvent:
		*f = v
		return nil
	default:
		return fmt.Errorf("invalid Factor numeric value: %d", i)
	}
}
