package main

import (
	"fmt"

	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/spf13/cobra"
)

func statesCmd(opts *options) *cobra.Command {
	var mechanism string

	cmd := &cobra.Command{
		Use:     "states",
		Short:   "List named states with their tolerance bands",
		Example: "  mechctl states --mechanism clamp\n  mechctl states",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{constants.HoistName, constants.LeverName, constants.ClampName}
			if mechanism != "" {
				names = []string{mechanism}
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				view, err := lookupView(opts.set, name)
				if err != nil {
					return err
				}

				display := view.Display()
				tol := view.Tolerance()
				rows := make([][]string, 0, len(view.States()))
				for _, st := range view.States() {
					rows = append(rows, []string{
						string(st.name),
						formatFloat(st.raw),
						formatFloat(view.InUnits(st.raw, display)),
						fmt.Sprintf("[%s, %s]",
							formatFloat(view.InUnits(st.raw-tol, display)),
							formatFloat(view.InUnits(st.raw+tol, display))),
					})
				}

				fmt.Fprint(out, keyValues(
					kv("mechanism", view.Name()),
					kv("tolerance", fmt.Sprintf("%s %s", formatFloat(view.InUnits(tol, display)), display.Unit)),
				))
				fmt.Fprintln(out, renderTable(
					[]string{"State", "Rotations", display.Unit, "Band (" + display.Unit + ")"},
					rows,
				))
				for _, h := range view.Hazards() {
					fmt.Fprintln(out, warnMsg("%s", h.String()))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mechanism, "mechanism", "m", "", "Mechanism name: hoist, lever or clamp (default: all)")
	return cmd
}
