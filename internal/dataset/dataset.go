package dataset

import (
	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

// Row is one experiment of the central composite design together with the
// measured yield per solvent system.
type Row struct {
	Time        float64
	Temperature float64
	Solvent     float64
	Yields      map[model.SolventSystem]float64
}

// Dataset is a parsed experiment table. It is immutable once loaded; a
// dataset refresh produces a new instance.
type Dataset struct {
	rows        []Row
	systems     []model.SolventSystem
	fingerprint string
}

// Len returns the number of experiment rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Systems returns the solvent systems present in the table, in canonical
// order.
func (d *Dataset) Systems() []model.SolventSystem {
	return d.systems
}

// Rows returns the experiment rows in file order.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// Runs projects the table onto one solvent system, producing the runs a
// response surface is fitted on.
func (d *Dataset) Runs(system model.SolventSystem) []model.ExperimentRun {
	runs := []model.ExperimentRun{}
	for _, row := range d.rows {
		yield, ok := row.Yields[system]
		if !ok {
			continue
		}
		runs = append(runs, model.ExperimentRun{
			Time:        row.Time,
			Temperature: row.Temperature,
			Solvent:     row.Solvent,
			Yield:       yield,
		})
	}
	return runs
}

// ObservedSpace returns the per-factor bounds actually covered by the
// experiments. The dashboard uses them to bound its sliders and surface
// grids.
func (d *Dataset) ObservedSpace() model.DesignSpace {
	var space model.DesignSpace
	for i, row := range d.rows {
		if i == 0 {
			space.Time = model.Range{Min: row.Time, Max: row.Time}
			space.Temperature = model.Range{Min: row.Temperature, Max: row.Temperature}
			space.Solvent = model.Range{Min: row.Solvent, Max: row.Solvent}
			continue
		}
		space.Time = expand(space.Time, row.Time)
		space.Temperature = expand(space.Temperature, row.Temperature)
		space.Solvent = expand(space.Solvent, row.Solvent)
	}
	return space
}

func expand(r model.Range, v float64) model.Range {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Fingerprint returns a content hash of the raw table, used to detect
// changes between refreshes.
func (d *Dataset) Fingerprint() string {
	return d.fingerprint
}
