package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
	"github.com/mikel-ao/aloe-extraction-optimization/internal/surface"
)

// View describes one pre-configured surface panel of the dashboard: which
// solvent system, which factor is held fixed and at what value, and the
// colorscale the frontend renders it with.
type View struct {
	Solvent    string  `yaml:"solvent" json:"solvent"`
	Slice      string  `yaml:"slice" json:"slice"`
	Fixed      float64 `yaml:"fixed" json:"fixed"`
	Colorscale string  `yaml:"colorscale" json:"colorscale"`
	Title      string  `yaml:"title" json:"title"`
}

// Views is the dashboard's default panel matrix.
type Views struct {
	Resolution int    `yaml:"resolution" json:"resolution"`
	Views      []View `yaml:"views" json:"views"`
}

// LoadViews reads and validates the panel configuration. Solvent and slice
// keys must be known and fixed values must lie inside the design space.
func LoadViews(path string) (*Views, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading views config: %w", err)
	}

	var views Views
	if err := yaml.Unmarshal(raw, &views); err != nil {
		return nil, fmt.Errorf("parsing views config: %w", err)
	}

	if views.Resolution <= 0 {
		views.Resolution = surface.DefaultResolution
	}

	space := model.DefaultDesignSpace()
	for i, view := range views.Views {
		if _, err := model.ParseSolventSystem(view.Solvent); err != nil {
			return nil, fmt.Errorf("view %d: %w", i+1, err)
		}
		slice, err := surface.ParseSliceType(view.Slice)
		if err != nil {
			return nil, fmt.Errorf("view %d: %w", i+1, err)
		}
		if r := fixedRange(space, slice); !r.Contains(view.Fixed) {
			return nil, fmt.Errorf("view %d: fixed value %g outside range [%g, %g]",
				i+1, view.Fixed, r.Min, r.Max)
		}
	}

	return &views, nil
}

func fixedRange(space model.DesignSpace, slice surface.SliceType) model.Range {
	switch slice {
	case surface.FixedSolvent:
		return space.Solvent
	case surface.FixedTemperature:
		return space.Temperature
	default:
		return space.Time
	}
}
