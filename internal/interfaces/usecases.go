package interfaces

import (
	"github.com/iwtcode/mechanismAdapter/internal/domain/models"
	telemetry "github.com/iwtcode/mechanismAdapter/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	GetMechanisms() (*models.MechanismsResponse, error)
	GetMechanism(name string) (*telemetry.MechanismTelemetry, error)
	GetAlerts() (*models.AlertsResponse, error)
	SetTarget(name string, req models.TargetRequest) error
	SetOpenLoop(name string, req models.OpenLoopRequest) error
	SetVoltage(name string, req models.VoltageRequest) error
	StopMechanism(name string) error
	StopAll() error
}
