package main

import (
	"fmt"

	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/spf13/cobra"
)

func convertCmd(opts *options) *cobra.Command {
	var (
		mechanism string
		value     float64
		unit      string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a value into every unit the mechanism knows",
		Example: "  mechctl convert --mechanism hoist --value 12 --unit inches\n" +
			"  mechctl convert --mechanism lever --value 20",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := lookupView(opts.set, mechanism)
			if err != nil {
				return err
			}
			raw, err := view.ToRaw(value, unit)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(view.Units()))
			for _, conv := range view.Units() {
				rows = append(rows, []string{conv.Unit, formatFloat(view.InUnits(raw, conv))})
			}
			state, ok := view.Classify(raw)

			out := cmd.OutOrStdout()
			fmt.Fprint(out, keyValues(
				kv("mechanism", view.Name()),
				kv("input", fmt.Sprintf("%s %s", formatFloat(value), unit)),
				kv("state", units.FormatState(state, ok)),
			))
			fmt.Fprintln(out, renderTable([]string{"Unit", "Value"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mechanism, "mechanism", "m", "", "Mechanism name: hoist, lever or clamp")
	cmd.Flags().Float64Var(&value, "value", 0, "Value to convert")
	cmd.Flags().StringVar(&unit, "unit", units.UnitRotations, "Unit of --value")
	_ = cmd.MarkFlagRequired("mechanism")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
