package constants

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/iwtcode/mechanismAdapter/units"
	"gopkg.in/yaml.v3"
)

// Value - число с единицей измерения, как оно записано в файле констант.
// Пустая единица означает обороты привода.
type Value struct {
	Amount float64 `yaml:"value"`
	Unit   string  `yaml:"unit,omitempty"`
}

// UnmarshalYAML заменяет значение целиком: переопределение без unit
// задается в оборотах, а не в единице значения по умолчанию.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	type plain Value
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*v = Value(p)
	return nil
}

// NamedValue - именованное положение механизма.
type NamedValue struct {
	Name  units.StateName `yaml:"name"`
	Value `yaml:",inline"`
}

// UnmarshalYAML перекрывает метод встроенного Value, иначе имя терялось бы.
func (n *NamedValue) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name   units.StateName `yaml:"name"`
		Amount float64         `yaml:"value"`
		Unit   string          `yaml:"unit"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*n = NamedValue{Name: raw.Name, Value: Value{Amount: raw.Amount, Unit: raw.Unit}}
	return nil
}

// MechanismConstants - неизменяемые параметры одного механизма.
type MechanismConstants struct {
	ActuatorID      int                `yaml:"actuator_id"`
	Conversions     []units.Conversion `yaml:"conversions"`
	DisplayUnit     string             `yaml:"display_unit"`
	States          []NamedValue       `yaml:"states"`
	StateTolerance  Value              `yaml:"state_tolerance"`
	TargetTolerance *Value             `yaml:"target_tolerance,omitempty"`
	MaxDutyCycle    float64            `yaml:"max_duty_cycle"`
	MaxVoltage      float64            `yaml:"max_voltage"`
}

// Set - константы всех механизмов. Создается один раз при старте и
// передается по указателю.
type Set struct {
	Hoist MechanismConstants `yaml:"hoist"`
	Lever MechanismConstants `yaml:"lever"`
	Clamp MechanismConstants `yaml:"clamp"`
}

// Имена механизмов
const (
	HoistName = "hoist"
	LeverName = "lever"
	ClampName = "clamp"
)

const (
	hoistRotationsPerInch = 101.244 / 61
	leverGearRatio        = 80.0 / 1.0
	clampGearRatio        = 40.0 / 1.0
	defaultMaxVoltage     = 16
)

var ErrInvalidConstants = errors.New("invalid mechanism constants")

// Default возвращает константы робота, на котором механизмы были откалиброваны.
func Default() *Set {
	return &Set{
		Hoist: MechanismConstants{
			ActuatorID: 3,
			Conversions: []units.Conversion{
				units.LinearConversion(hoistRotationsPerInch),
			},
			DisplayUnit: units.UnitInches,
			States: []NamedValue{
				{Name: units.Home, Value: Value{Amount: 0}},
				{Name: units.L1, Value: Value{Amount: 12, Unit: units.UnitInches}},
				{Name: units.L2, Value: Value{Amount: 18, Unit: units.UnitInches}},
				{Name: units.L3, Value: Value{Amount: 33, Unit: units.UnitInches}},
				{Name: units.L4, Value: Value{Amount: 58, Unit: units.UnitInches}},
			},
			StateTolerance: Value{Amount: 0.5, Unit: units.UnitInches},
			MaxDutyCycle:   1,
			MaxVoltage:     defaultMaxVoltage,
		},
		Lever: MechanismConstants{
			ActuatorID: 2,
			Conversions: []units.Conversion{
				units.RotationsConversion(leverGearRatio),
				units.DegreesConversion(leverGearRatio),
			},
			DisplayUnit: units.UnitDegrees,
			States: []NamedValue{
				{Name: units.Open, Value: Value{Amount: 3, Unit: units.UnitDegrees}},
				{Name: units.Closed, Value: Value{Amount: 46}},
			},
			StateTolerance: Value{Amount: 5, Unit: units.UnitDegrees},
			MaxDutyCycle:   1,
			MaxVoltage:     defaultMaxVoltage,
		},
		Clamp: MechanismConstants{
			ActuatorID: 3,
			Conversions: []units.Conversion{
				units.RotationsConversion(clampGearRatio),
				units.DegreesConversion(clampGearRatio),
			},
			DisplayUnit: units.UnitDegrees,
			States: []NamedValue{
				{Name: units.Open, Value: Value{Amount: 0}},
				{Name: units.Closed, Value: Value{Amount: 7.5}},
			},
			StateTolerance: Value{Amount: 5, Unit: units.UnitDegrees},
			MaxDutyCycle:   0.5,
			MaxVoltage:     defaultMaxVoltage,
		},
	}
}

// Load читает YAML-файл констант. Отсутствующие механизмы и поля берутся из Default.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read constants: %w", err)
	}
	return Parse(data)
}

// Parse разбирает YAML поверх значений по умолчанию и проверяет результат.
func Parse(data []byte) (*Set, error) {
	set := Default()
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("parse constants: %w", err)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Validate проверяет константы, без которых механизм не может работать.
// Пересечения интервалов допуска сюда не входят: см. Hazards.
func (s *Set) Validate() error {
	for _, m := range []struct {
		name string
		c    *MechanismConstants
	}{{HoistName, &s.Hoist}, {LeverName, &s.Lever}, {ClampName, &s.Clamp}} {
		if err := m.c.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConstants, m.name, err)
		}
	}
	return nil
}

func (c *MechanismConstants) validate() error {
	for _, conv := range c.Conversions {
		if err := conv.Validate(); err != nil {
			return err
		}
	}
	if len(c.States) == 0 {
		return errors.New("no named states")
	}
	for _, st := range c.States {
		if st.Name == "" {
			return errors.New("named state without a name")
		}
		if _, err := c.rotations(st.Value); err != nil {
			return fmt.Errorf("state %s: %w", st.Name, err)
		}
	}
	tol, err := c.rotations(c.StateTolerance)
	if err != nil {
		return fmt.Errorf("state tolerance: %w", err)
	}
	if tol < 0 {
		return fmt.Errorf("state tolerance must not be negative, got %v", tol)
	}
	if c.TargetTolerance != nil {
		tt, err := c.rotations(*c.TargetTolerance)
		if err != nil {
			return fmt.Errorf("target tolerance: %w", err)
		}
		if tt < 0 {
			return fmt.Errorf("target tolerance must not be negative, got %v", tt)
		}
	}
	if !(c.MaxDutyCycle > 0 && c.MaxDutyCycle <= 1) {
		return fmt.Errorf("max duty cycle must be in (0, 1], got %v", c.MaxDutyCycle)
	}
	if !(c.MaxVoltage > 0) || math.IsInf(c.MaxVoltage, 0) {
		return fmt.Errorf("max voltage must be positive, got %v", c.MaxVoltage)
	}
	if c.DisplayUnit != "" && c.DisplayUnit != units.UnitRotations {
		if _, ok := c.Conversion(c.DisplayUnit); !ok {
			return fmt.Errorf("display unit %q has no conversion", c.DisplayUnit)
		}
	}
	return nil
}

// Conversion ищет перевод по имени единицы.
func (c *MechanismConstants) Conversion(unit string) (units.Conversion, bool) {
	if unit == "" || unit == units.UnitRotations {
		return units.Identity(), true
	}
	for _, conv := range c.Conversions {
		if conv.Unit == unit {
			return conv, true
		}
	}
	return units.Conversion{}, false
}

// Display возвращает перевод, в котором механизм показывается в телеметрии.
func (c *MechanismConstants) Display() units.Conversion {
	conv, _ := c.Conversion(c.DisplayUnit)
	return conv
}

func (c *MechanismConstants) rotations(v Value) (float64, error) {
	conv, ok := c.Conversion(v.Unit)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", v.Unit)
	}
	raw := v.Amount * conv.RawPerUnit
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("value %v %s is not finite", v.Amount, v.Unit)
	}
	return raw, nil
}
