package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDesignSpace(t *testing.T) {
	space := DefaultDesignSpace()

	assert.Equal(t, Range{Min: 10, Max: 210}, space.Time)
	assert.Equal(t, Range{Min: 25, Max: 95}, space.Temperature)
	assert.Equal(t, Range{Min: 0, Max: 100}, space.Solvent)
}

func TestDesignSpaceCheck(t *testing.T) {
	space := DefaultDesignSpace()

	tests := []struct {
		name    string
		point   Point
		factors []Factor
	}{
		{
			name:    "center point is inside",
			point:   Point{Time: 110, Temperature: 60, Solvent: 50},
			factors: nil,
		},
		{
			name:    "boundary values are inside",
			point:   Point{Time: 10, Temperature: 95, Solvent: 0},
			factors: nil,
		},
		{
			name:    "time above range",
			point:   Point{Time: 250, Temperature: 60, Solvent: 50},
			factors: []Factor{FactorTime},
		},
		{
			name:    "temperature below range",
			point:   Point{Time: 110, Temperature: 20, Solvent: 50},
			factors: []Factor{FactorTemperature},
		},
		{
			name:    "solvent above range",
			point:   Point{Time: 110, Temperature: 60, Solvent: 101},
			factors: []Factor{FactorSolvent},
		},
		{
			name:    "every factor out of range",
			point:   Point{Time: 0, Temperature: 100, Solvent: -5},
			factors: []Factor{FactorTime, FactorTemperature, FactorSolvent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := space.Check(tt.point)

			require.Len(t, warnings, len(tt.factors))
			for i, factor := range tt.factors {
				assert.Equal(t, factor, warnings[i].Factor)
				assert.Equal(t, tt.point.Value(factor), warnings[i].Value)
			}
			assert.Equal(t, len(tt.factors) == 0, space.Contains(tt.point))
		})
	}
}

func TestOutOfRangeWarningString(t *testing.T) {
	warning := OutOfRangeWarning{Factor: FactorTime, Value: 250, Min: 10, Max: 210}

	text := warning.String()

	assert.Contains(t, text, "Time (min)")
	assert.Contains(t, text, "250")
	assert.Contains(t, text, "[10, 210]")
	assert.Contains(t, text, "extrapolation")
}

func TestExperimentRunPoint(t *testing.T) {
	run := ExperimentRun{Time: 50, Temperature: 40, Solvent: 20, Yield: 35.2}

	assert.Equal(t, Point{Time: 50, Temperature: 40, Solvent: 20}, run.Point())
}

func TestRange(t *testing.T) {
	r := Range{Min: 25, Max: 95}

	assert.True(t, r.Contains(25))
	assert.True(t, r.Contains(95))
	assert.True(t, r.Contains(60))
	assert.False(t, r.Contains(24.9))
	assert.False(t, r.Contains(95.1))
	assert.Equal(t, 70.0, r.Width())
}
