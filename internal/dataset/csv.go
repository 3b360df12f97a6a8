package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

// ParseCSV reads an experiment table with a header row. The columns "time",
// "temp" and "solvent" are required, response columns are matched against
// the known solvent system keys and other columns are skipped. Rows with
// malformed numbers or process settings outside the design space are load
// errors, never silently dropped.
func ParseCSV(r io.Reader, space model.DesignSpace) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	factorColumns := map[model.Factor]int{}
	responseColumns := map[model.SolventSystem]int{}
	for i, name := range records[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case model.FactorTime.String():
			factorColumns[model.FactorTime] = i
		case model.FactorTemperature.String():
			factorColumns[model.FactorTemperature] = i
		case model.FactorSolvent.String():
			factorColumns[model.FactorSolvent] = i
		default:
			if system, err := model.ParseSolventSystem(key); err == nil {
				responseColumns[system] = i
			}
		}
	}
	for _, factor := range model.AllFactors() {
		if _, ok := factorColumns[factor]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", factor)
		}
	}
	if len(responseColumns) == 0 {
		return nil, fmt.Errorf("dataset has no known response columns")
	}

	systems := []model.SolventSystem{}
	for _, system := range model.AllSolventSystems() {
		if _, ok := responseColumns[system]; ok {
			systems = append(systems, system)
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, after the header

		row := Row{Yields: make(map[model.SolventSystem]float64, len(systems))}
		for factor, column := range factorColumns {
			v, err := parseCell(record, column, rowNum, factor.String())
			if err != nil {
				return nil, err
			}
			switch factor {
			case model.FactorTime:
				row.Time = v
			case model.FactorTemperature:
				row.Temperature = v
			case model.FactorSolvent:
				row.Solvent = v
			}
		}

		point := model.Point{Time: row.Time, Temperature: row.Temperature, Solvent: row.Solvent}
		if warnings := space.Check(point); len(warnings) > 0 {
			return nil, fmt.Errorf("row %d: %s", rowNum, warnings[0])
		}

		for system, column := range responseColumns {
			v, err := parseCell(record, column, rowNum, system.Key())
			if err != nil {
				return nil, err
			}
			row.Yields[system] = v
		}

		rows = append(rows, row)
	}

	digest := sha256.Sum256(raw)

	return &Dataset{
		rows:        rows,
		systems:     systems,
		fingerprint: hex.EncodeToString(digest[:]),
	}, nil
}

func parseCell(record []string, column, rowNum int, name string) (float64, error) {
	if column >= len(record) {
		return 0, fmt.Errorf("row %d: missing %s value", rowNum, name)
	}
	cell := strings.TrimSpace(record[column])
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s value %q", rowNum, name, cell)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("row %d: invalid %s value %q", rowNum, name, cell)
	}
	return v, nil
}
