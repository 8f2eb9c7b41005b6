package actuator

import "errors"

// Driver - контракт драйвера привода. Все команды неблокирующие: драйвер только
// записывает запрос и сообщает, удалось ли его принять.
type Driver interface {
	// ReadPosition возвращает позицию в оборотах привода, растущую при вращении вперед.
	ReadPosition() float64
	CommandPosition(rotations float64) error
	CommandOpenLoop(level float64) error
	CommandVoltage(volts float64) error
	CommandStop() error
}

// Status - диагностическое состояние привода для системы оповещений.
type Status struct {
	Connected      bool    `json:"connected"`
	TemperatureC   float64 `json:"temperature_c"`
	CriticalFaults bool    `json:"critical_faults"`
}

// StatusReader реализуется драйверами, которые умеют отдавать диагностику.
type StatusReader interface {
	Status() Status
}

// Mode - последний принятый драйвером режим управления.
type Mode string

const (
	ModeIdle     Mode = "idle"
	ModePosition Mode = "position"
	ModeOpenLoop Mode = "open_loop"
	ModeVoltage  Mode = "voltage"
)

// ErrRejected возвращается драйвером, который не смог применить команду.
var ErrRejected = errors.New("actuator rejected command")
