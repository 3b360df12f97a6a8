package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SolventSystem identifies one of the green solvent systems the extraction
// experiments were run with.
type SolventSystem int

const (
	EthanolWater SolventSystem = iota
	PropyleneGlycolWater
	GlycerolWater
)

// AllSolventSystems returns the systems in canonical dataset column order.
func AllSolventSystems() []SolventSystem {
	return []SolventSystem{EthanolWater, PropyleneGlycolWater, GlycerolWater}
}

// Key returns the dataset column key for the system.
func (s SolventSystem) Key() string {
	switch s {
	case EthanolWater:
		return "et_w"
	case PropyleneGlycolWater:
		return "pg_w"
	case GlycerolWater:
		return "gly_w"
	default:
		return "unknown"
	}
}

func (s SolventSystem) String() string {
	return s.Key()
}

// DisplayName returns the human-readable name of the solvent system.
func (s SolventSystem) DisplayName() string {
	switch s {
	case EthanolWater:
		return "Ethanol-Water"
	case PropyleneGlycolWater:
		return "Propylene Glycol-Water"
	case GlycerolWater:
		return "Glycerol-Water"
	default:
		return "Unknown"
	}
}

// ParseSolventSystem resolves a dataset column key ("et_w", "pg_w", "gly_w")
// to its solvent system.
func ParseSolventSystem(key string) (SolventSystem, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "et_w":
		return EthanolWater, nil
	case "pg_w":
		return PropyleneGlycolWater, nil
	case "gly_w":
		return GlycerolWater, nil
	default:
		return 0, fmt.Errorf("unknown solvent system: %q", key)
	}
}

// Marshal as a JSON string: "et_w"/"pg_w"/"gly_w"
func (s SolventSystem) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Key())
}

// Accept either JSON strings ("et_w") or numbers (0/1/2)
func (s *SolventSystem) UnmarshalJSON(b []byte) error {
	// string path
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		parsed, err := ParseSolventSystem(strings.Trim(string(b), `"`))
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
	switch v := SolventSystem(i); v {
	case EthanolWater, PropyleneGlycolWater, GlycerolWater:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid SolventSystem numeric value: %d", i)
	}
}
