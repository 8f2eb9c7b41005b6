package main

import (
	"errors"
	"fmt"

	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/spf13/cobra"
)

func classifyCmd(opts *options) *cobra.Command {
	var (
		mechanism string
		raw       float64
		value     float64
		unit      string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Name the state a position falls into",
		Example: "  mechctl classify --mechanism lever --raw 0.66\n" +
			"  mechctl classify --mechanism hoist --value 18.2 --unit inches",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := lookupView(opts.set, mechanism)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			switch {
			case flags.Changed("raw") && flags.Changed("value"):
				return errors.New("--raw and --value are mutually exclusive")
			case flags.Changed("value"):
				if raw, err = view.ToRaw(value, unit); err != nil {
					return err
				}
			case !flags.Changed("raw"):
				return errors.New("either --raw or --value is required")
			}

			state, ok := view.Classify(raw)
			display := view.Display()
			fmt.Fprint(cmd.OutOrStdout(), keyValues(
				kv("mechanism", view.Name()),
				kv("rotations", formatFloat(raw)),
				kv(display.Unit, formatFloat(view.InUnits(raw, display))),
				kv("state", units.FormatState(state, ok)),
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mechanism, "mechanism", "m", "", "Mechanism name: hoist, lever or clamp")
	cmd.Flags().Float64Var(&raw, "raw", 0, "Actuator position in rotations")
	cmd.Flags().Float64Var(&value, "value", 0, "Position in --unit")
	cmd.Flags().StringVar(&unit, "unit", units.UnitRotations, "Unit of --value")
	_ = cmd.MarkFlagRequired("mechanism")
	return cmd
}
