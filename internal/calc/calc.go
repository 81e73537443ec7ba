// Package calc holds the pure property-math behind the calculator
// screen: plot area conversion, stamp duty with registration fee,
// brokerage cuts and compound appreciation projections.
package calc

import (
	"fmt"
	"math"
	"strings"
)

// SqFeetPerSqMeter converts square meters to square feet.
const SqFeetPerSqMeter = 10.764

type AreaUnit string

const (
	UnitFeet   AreaUnit = "feet"
	UnitMeters AreaUnit = "meters"
)

// PlotArea is a plot size in both display units.
type PlotArea struct {
	SqFeet   float64
	SqMeters float64
}

// PlotSize computes the area of a rectangular plot. Dimensions are taken
// in the given unit; the result carries both square feet and square
// meters.
func PlotSize(length, width float64, unit AreaUnit) (PlotArea, error) {
	if length <= 0 || width <= 0 {
		return PlotArea{}, fmt.Errorf("plot dimensions must be positive, got %g x %g", length, width)
	}
	area := length * width
	switch unit {
	case UnitFeet:
		return PlotArea{SqFeet: area, SqMeters: area / SqFeetPerSqMeter}, nil
	case UnitMeters:
		return PlotArea{SqFeet: area * SqFeetPerSqMeter, SqMeters: area}, nil
	default:
		return PlotArea{}, fmt.Errorf("unknown area unit %q", unit)
	}
}

// StampDutyBreakdown itemizes the government charges on a purchase.
type StampDutyBreakdown struct {
	StampDuty       float64
	RegistrationFee float64
	Total           float64
}

// StampDuty computes Maharashtra-style charges: 5% duty on residential,
// 6% on commercial, plus a flat 1% registration fee.
func StampDuty(propertyValue float64, commercial bool) (StampDutyBreakdown, error) {
	if propertyValue <= 0 {
		return StampDutyBreakdown{}, fmt.Errorf("property value must be positive, got %g", propertyValue)
	}
	rate := 0.05
	if commercial {
		rate = 0.06
	}
	duty := propertyValue * rate
	registration := propertyValue * 0.01
	return StampDutyBreakdown{
		StampDuty:       duty,
		RegistrationFee: registration,
		Total:           duty + registration,
	}, nil
}

// Brokerage computes the commission amount for a percent of the property
// value.
func Brokerage(propertyValue, percent float64) (float64, error) {
	if propertyValue <= 0 {
		return 0, fmt.Errorf("property value must be positive, got %g", propertyValue)
	}
	if percent <= 0 || percent > 100 {
		return 0, fmt.Errorf("brokerage percent must be in (0, 100], got %g", percent)
	}
	return propertyValue * percent / 100, nil
}

// AppreciationProjection is the outcome of compounding a property value
// over a number of years.
type AppreciationProjection struct {
	FutureValue       float64
	TotalAppreciation float64
}

// Appreciation compounds currentValue at ratePercent per year over the
// given horizon.
func Appreciation(currentValue, ratePercent float64, years int) (AppreciationProjection, error) {
	if currentValue <= 0 {
		return AppreciationProjection{}, fmt.Errorf("current value must be positive, got %g", currentValue)
	}
	if years <= 0 {
		return AppreciationProjection{}, fmt.Errorf("years must be positive, got %d", years)
	}
	future := currentValue * math.Pow(1+ratePercent/100, float64(years))
	return AppreciationProjection{
		FutureValue:       future,
		TotalAppreciation: future - currentValue,
	}, nil
}

// ParseAreaUnit normalizes user input to an AreaUnit.
func ParseAreaUnit(s string) (AreaUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "feet", "ft", "sqft", "":
		return UnitFeet, nil
	case "meters", "metres", "m", "sqm":
		return UnitMeters, nil
	default:
		return "", fmt.Errorf("unknown area unit %q (want feet or meters)", s)
	}
}
