package control

import (
	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/alerts"
	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/sirupsen/logrus"
)

type (
	Hoist = Mechanism[units.Hoist]
	Lever = Mechanism[units.Lever]
	Clamp = Mechanism[units.Clamp]
)

// SpecFrom строит описание механизма из проверенных констант.
func SpecFrom[F units.Family](name string, c *constants.MechanismConstants) Spec[F] {
	conversions := make([]units.Conversion, len(c.Conversions))
	copy(conversions, c.Conversions)

	return Spec[F]{
		Name:            name,
		ActuatorID:      c.ActuatorID,
		Display:         c.Display(),
		Conversions:     conversions,
		States:          constants.StateTable[F](c),
		TargetTolerance: constants.TargetTolerance[F](c),
		MaxDutyCycle:    c.MaxDutyCycle,
		MaxVoltage:      c.MaxVoltage,
	}
}

// NewHoist создает подъемник.
func NewHoist(set *constants.Set, driver actuator.Driver, logger logrus.FieldLogger, registry *alerts.Registry) *Hoist {
	return New(SpecFrom[units.Hoist](constants.HoistName, &set.Hoist), driver, logger, registry)
}

// NewLever создает рычаг.
func NewLever(set *constants.Set, driver actuator.Driver, logger logrus.FieldLogger, registry *alerts.Registry) *Lever {
	return New(SpecFrom[units.Lever](constants.LeverName, &set.Lever), driver, logger, registry)
}

// NewClamp создает зажим.
func NewClamp(set *constants.Set, driver actuator.Driver, logger logrus.FieldLogger, registry *alerts.Registry) *Clamp {
	return New(SpecFrom[units.Clamp](constants.ClampName, &set.Clamp), driver, logger, registry)
}
