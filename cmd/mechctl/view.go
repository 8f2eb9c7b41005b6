package main

import (
	"fmt"

	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/iwtcode/mechanismAdapter/units"
)

type stateRow struct {
	name units.StateName
	raw  float64
}

// mechanismView скрывает семейство величин механизма, выбранного по имени из флага.
type mechanismView interface {
	Name() string
	Units() []units.Conversion
	ToRaw(value float64, unit string) (float64, error)
	InUnits(raw float64, conv units.Conversion) float64
	Classify(raw float64) (units.StateName, bool)
	States() []stateRow
	Tolerance() float64
	Display() units.Conversion
	Hazards() []units.Hazard
}

type familyView[F units.Family] struct {
	name  string
	c     *constants.MechanismConstants
	table *units.StateTable[F]
}

func newView[F units.Family](name string, c *constants.MechanismConstants) mechanismView {
	return &familyView[F]{name: name, c: c, table: constants.StateTable[F](c)}
}

func lookupView(set *constants.Set, name string) (mechanismView, error) {
	c, ok := set.Mechanism(name)
	if !ok {
		return nil, fmt.Errorf("unknown mechanism %q (expected %s, %s or %s)",
			name, constants.HoistName, constants.LeverName, constants.ClampName)
	}
	switch name {
	case constants.HoistName:
		return newView[units.Hoist](name, c), nil
	case constants.LeverName:
		return newView[units.Lever](name, c), nil
	default:
		return newView[units.Clamp](name, c), nil
	}
}

func (v *familyView[F]) Name() string { return v.name }

func (v *familyView[F]) Units() []units.Conversion {
	out := []units.Conversion{units.Identity()}
	return append(out, v.c.Conversions...)
}

func (v *familyView[F]) ToRaw(value float64, unit string) (float64, error) {
	conv, ok := v.c.Conversion(unit)
	if !ok {
		return 0, fmt.Errorf("%s has no unit %q", v.name, unit)
	}
	return units.FromUnits[F](value, conv).Raw(), nil
}

func (v *familyView[F]) InUnits(raw float64, conv units.Conversion) float64 {
	return units.FromRaw[F](raw).ToUnits(conv)
}

func (v *familyView[F]) Classify(raw float64) (units.StateName, bool) {
	return v.table.Classify(units.FromRaw[F](raw))
}

func (v *familyView[F]) States() []stateRow {
	entries := v.table.Entries()
	rows := make([]stateRow, len(entries))
	for i, e := range entries {
		rows[i] = stateRow{name: e.Name, raw: e.Value.Raw()}
	}
	return rows
}

func (v *familyView[F]) Tolerance() float64 { return v.table.Tolerance().Raw() }

func (v *familyView[F]) Display() units.Conversion { return v.c.Display() }

func (v *familyView[F]) Hazards() []units.Hazard { return v.table.Hazards() }
