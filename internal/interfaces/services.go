package interfaces

import (
	"context"

	"github.com/iwtcode/mechanismAdapter/internal/domain/models"
	telemetry "github.com/iwtcode/mechanismAdapter/models"
)

// MechanismService - это агрегирующий интерфейс для всей бизнес-логики.
type MechanismService interface {
	TelemetryManager
	CommandManager
}

// TelemetryManager определяет контракт цикла опроса механизмов.
type TelemetryManager interface {
	StartPolling(ctx context.Context) error
	StopPolling(ctx context.Context) error
	Latest() (*telemetry.Snapshot, bool)
}

// CommandManager определяет контракт для управления механизмами по имени.
type CommandManager interface {
	Names() []string
	SetTarget(name string, req models.TargetRequest) error
	SetOpenLoop(name string, level float64) error
	SetVoltage(name string, volts float64) error
	Stop(name string) error
	StopAll() error
}
