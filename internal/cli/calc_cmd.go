package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanvaze/brokerdesk/internal/calc"
	"github.com/rohanvaze/brokerdesk/internal/cli/formatter"
)

// newCalcCmd groups the offline calculators. None of them touch the
// API, so no auth is required.
func newCalcCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Real-estate calculators",
	}

	cmd.AddCommand(
		newCalcPlotSizeCmd(),
		newCalcStampDutyCmd(),
		newCalcBrokerageCmd(),
		newCalcAppreciationCmd(),
	)

	return cmd
}

func newCalcPlotSizeCmd() *cobra.Command {
	var length, width float64
	var unit string

	cmd := &cobra.Command{
		Use:   "plot-size",
		Short: "Plot area from dimensions",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := calc.ParseAreaUnit(unit)
			if err != nil {
				return err
			}
			area, err := calc.PlotSize(length, width, u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlotArea(area))
			return nil
		},
	}

	cmd.Flags().Float64Var(&length, "length", 0, "Plot length")
	cmd.Flags().Float64Var(&width, "width", 0, "Plot width")
	cmd.Flags().StringVar(&unit, "unit", "feet", "Dimension unit (feet or meters)")
	_ = cmd.MarkFlagRequired("length")
	_ = cmd.MarkFlagRequired("width")

	return cmd
}

func newCalcStampDutyCmd() *cobra.Command {
	var value float64
	var commercial bool

	cmd := &cobra.Command{
		Use:   "stamp-duty",
		Short: "Stamp duty and registration fee",
		RunE: func(cmd *cobra.Command, args []string) error {
			breakdown, err := calc.StampDuty(value, commercial)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStampDuty(breakdown))
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Property value in rupees")
	cmd.Flags().BoolVar(&commercial, "commercial", false, "Commercial property rate")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newCalcBrokerageCmd() *cobra.Command {
	var value, percent float64

	cmd := &cobra.Command{
		Use:   "brokerage",
		Short: "Brokerage from value and percentage",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := calc.Brokerage(value, percent)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBrokerageCalc(value, percent, amount))
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Property value in rupees")
	cmd.Flags().Float64Var(&percent, "percent", 2, "Brokerage percentage")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newCalcAppreciationCmd() *cobra.Command {
	var value, rate float64
	var years int

	cmd := &cobra.Command{
		Use:   "appreciation",
		Short: "Compound appreciation projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			projection, err := calc.Appreciation(value, rate, years)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAppreciation(projection, rate, years))
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Current value in rupees")
	cmd.Flags().Float64Var(&rate, "rate", 8, "Annual appreciation rate (percent)")
	cmd.Flags().IntVar(&years, "years", 5, "Projection horizon in years")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
