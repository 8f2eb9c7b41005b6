package constants

import (
	"github.com/iwtcode/mechanismAdapter/units"
)

// Quantity переводит значение из файла в каноническую величину семейства F.
// Константы должны быть предварительно проверены Validate.
func Quantity[F units.Family](c *MechanismConstants, v Value) units.Quantity[F] {
	raw, _ := c.rotations(v)
	return units.FromRaw[F](raw)
}

// StateTable строит таблицу именованных положений в порядке объявления.
func StateTable[F units.Family](c *MechanismConstants) *units.StateTable[F] {
	entries := make([]units.StateEntry[F], 0, len(c.States))
	for _, st := range c.States {
		entries = append(entries, units.StateEntry[F]{Name: st.Name, Value: Quantity[F](c, st.Value)})
	}
	return units.NewStateTable(Quantity[F](c, c.StateTolerance), entries...)
}

// TargetTolerance возвращает допуск удержания цели. Если он не задан отдельно,
// используется допуск именованных положений.
func TargetTolerance[F units.Family](c *MechanismConstants) units.Quantity[F] {
	if c.TargetTolerance != nil {
		return Quantity[F](c, *c.TargetTolerance).Abs()
	}
	return Quantity[F](c, c.StateTolerance).Abs()
}

// Hazards проверяет таблицы всех механизмов на опасные конфигурации.
// Результат только сообщается, таблицы не исправляются.
func (s *Set) Hazards() map[string][]units.Hazard {
	out := make(map[string][]units.Hazard)
	if h := StateTable[units.Hoist](&s.Hoist).Hazards(); len(h) > 0 {
		out[HoistName] = h
	}
	if h := StateTable[units.Lever](&s.Lever).Hazards(); len(h) > 0 {
		out[LeverName] = h
	}
	if h := StateTable[units.Clamp](&s.Clamp).Hazards(); len(h) > 0 {
		out[ClampName] = h
	}
	return out
}

// Mechanism возвращает константы механизма по имени.
func (s *Set) Mechanism(name string) (*MechanismConstants, bool) {
	switch name {
	case HoistName:
		return &s.Hoist, true
	case LeverName:
		return &s.Lever, true
	case ClampName:
		return &s.Clamp, true
	default:
		return nil, false
	}
}
