package units

import "fmt"

// Единицы механизмов
const (
	UnitRotations         = "rotations" // обороты привода, каноническая единица
	UnitInches            = "inches"
	UnitMechanismRotation = "mech_rotations"
	UnitDegrees           = "degrees"
)

// Conversion - именованный множитель перевода единиц механизма в обороты привода.
// Это данные, а не код: меняются без правки логики классификации и слежения.
type Conversion struct {
	Unit       string  `json:"unit" yaml:"unit"`
	RawPerUnit float64 `json:"raw_per_unit" yaml:"raw_per_unit"`
}

// Identity - обороты привода в обороты привода.
func Identity() Conversion {
	return Conversion{Unit: UnitRotations, RawPerUnit: 1}
}

// LinearConversion строит перевод дюймов через число оборотов привода на дюйм.
func LinearConversion(rotationsPerInch float64) Conversion {
	return Conversion{Unit: UnitInches, RawPerUnit: rotationsPerInch}
}

// RotationsConversion - обороты механизма через передаточное число.
func RotationsConversion(gearRatio float64) Conversion {
	return Conversion{Unit: UnitMechanismRotation, RawPerUnit: gearRatio}
}

// DegreesConversion - градусы механизма: deg/360 * gearRatio.
func DegreesConversion(gearRatio float64) Conversion {
	return Conversion{Unit: UnitDegrees, RawPerUnit: gearRatio / 360}
}

// Validate проверяет, что множитель пригоден для обратного преобразования.
func (c Conversion) Validate() error {
	if c.Unit == "" {
		return fmt.Errorf("conversion has no unit name")
	}
	if !(c.RawPerUnit > 0) {
		return fmt.Errorf("conversion %q: raw_per_unit must be positive, got %v", c.Unit, c.RawPerUnit)
	}
	return nil
}
