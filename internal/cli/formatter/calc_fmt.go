package formatter

import (
	"fmt"
	"strings"

	"github.com/rohanvaze/brokerdesk/internal/calc"
	"github.com/rohanvaze/brokerdesk/internal/domain"
)

// FormatPlotArea renders a plot size result in both units.
func FormatPlotArea(a calc.PlotArea) string {
	return fmt.Sprintf("%s %s\n%s %s\n",
		Dim(PadRight("Area", 14)), Bold(fmt.Sprintf("%.2f sq ft", a.SqFeet)),
		Dim(PadRight("", 14)), fmt.Sprintf("%.2f sq m", a.SqMeters),
	)
}

// FormatStampDuty renders the fee breakdown.
func FormatStampDuty(b calc.StampDutyBreakdown) string {
	var sb strings.Builder
	row := func(label string, amount float64) {
		fmt.Fprintf(&sb, "%s %s\n", Dim(PadRight(label, 18)), Money(domain.Money(amount).Format()))
	}
	row("Stamp Duty", b.StampDuty)
	row("Registration Fee", b.RegistrationFee)
	row("Total", b.Total)
	return sb.String()
}

// FormatBrokerageCalc renders a commission result.
func FormatBrokerageCalc(propertyValue, percent, amount float64) string {
	return fmt.Sprintf("%s %s %s\n",
		Dim(PadRight("Brokerage", 14)),
		Bold(domain.Money(amount).Format()),
		Dim(fmt.Sprintf("(%.2g%% of %s)", percent, domain.Money(propertyValue).Format())),
	)
}

// FormatAppreciation renders a compound growth projection.
func FormatAppreciation(p calc.AppreciationProjection, ratePercent float64, years int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", Dim(PadRight("Future Value", 18)), Bold(domain.Money(p.FutureValue).Format()))
	fmt.Fprintf(&sb, "%s %s\n", Dim(PadRight("Appreciation", 18)), Money(domain.Money(p.TotalAppreciation).Format()))
	fmt.Fprintf(&sb, "%s\n", Dim(fmt.Sprintf("at %.2g%% over %d years", ratePercent, years)))
	return sb.String()
}
