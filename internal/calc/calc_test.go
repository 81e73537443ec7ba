package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotSize_Feet(t *testing.T) {
	area, err := PlotSize(40, 30, UnitFeet)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, area.SqFeet)
	assert.InDelta(t, 111.48, area.SqMeters, 0.01)
}

func TestPlotSize_MetersConvertsToFeet(t *testing.T) {
	area, err := PlotSize(10, 10, UnitMeters)
	require.NoError(t, err)
	assert.InDelta(t, 1076.4, area.SqFeet, 0.001)
	assert.Equal(t, 100.0, area.SqMeters)
}

func TestPlotSize_RejectsNonPositiveDimensions(t *testing.T) {
	_, err := PlotSize(0, 30, UnitFeet)
	assert.Error(t, err)
	_, err = PlotSize(40, -1, UnitFeet)
	assert.Error(t, err)
}

func TestStampDuty_Residential(t *testing.T) {
	b, err := StampDuty(5_000_000, false)
	require.NoError(t, err)
	assert.Equal(t, 250_000.0, b.StampDuty)
	assert.Equal(t, 50_000.0, b.RegistrationFee)
	assert.Equal(t, 300_000.0, b.Total)
}

func TestStampDuty_CommercialUsesHigherRate(t *testing.T) {
	b, err := StampDuty(5_000_000, true)
	require.NoError(t, err)
	assert.Equal(t, 300_000.0, b.StampDuty)
	assert.Equal(t, 50_000.0, b.RegistrationFee)
	assert.Equal(t, 350_000.0, b.Total)
}

func TestBrokerage(t *testing.T) {
	amount, err := Brokerage(10_000_000, 2)
	require.NoError(t, err)
	assert.Equal(t, 200_000.0, amount)

	_, err = Brokerage(10_000_000, 0)
	assert.Error(t, err)
	_, err = Brokerage(10_000_000, 101)
	assert.Error(t, err)
}

func TestAppreciation_Compounds(t *testing.T) {
	p, err := Appreciation(1_000_000, 10, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1_210_000, p.FutureValue, 0.01)
	assert.InDelta(t, 210_000, p.TotalAppreciation, 0.01)
}

func TestAppreciation_RejectsZeroYears(t *testing.T) {
	_, err := Appreciation(1_000_000, 10, 0)
	assert.Error(t, err)
}

func TestParseAreaUnit(t *testing.T) {
	unit, err := ParseAreaUnit(" Meters ")
	require.NoError(t, err)
	assert.Equal(t, UnitMeters, unit)

	unit, err = ParseAreaUnit("")
	require.NoError(t, err)
	assert.Equal(t, UnitFeet, unit)

	_, err = ParseAreaUnit("acres")
	assert.Error(t, err)
}
