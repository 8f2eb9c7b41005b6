package mechanism_service

import (
	"sync"
	"time"

	mechanism "github.com/iwtcode/mechanismAdapter"
	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/iwtcode/mechanismAdapter/internal/interfaces"
	"github.com/iwtcode/mechanismAdapter/internal/middleware/logging"
	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/iwtcode/mechanismAdapter/telemetry"
)

// Simulators - программные приводы, на которых работает сервис без оборудования.
type Simulators struct {
	Hoist *actuator.Simulator
	Lever *actuator.Simulator
	Clamp *actuator.Simulator
}

// NewSimulators создает приводы с идентификаторами из констант по умолчанию.
func NewSimulators() *Simulators {
	d := constants.Default()
	return &Simulators{
		Hoist: actuator.NewSimulator(actuator.DefaultSimulatorConfig(d.Hoist.ActuatorID)),
		Lever: actuator.NewSimulator(actuator.DefaultSimulatorConfig(d.Lever.ActuatorID)),
		Clamp: actuator.NewSimulator(actuator.DefaultSimulatorConfig(d.Clamp.ActuatorID)),
	}
}

// Drivers возвращает приводы в виде, принимаемом клиентом.
func (s *Simulators) Drivers() mechanism.Drivers {
	return mechanism.Drivers{Hoist: s.Hoist, Lever: s.Lever, Clamp: s.Clamp}
}

// Step продвигает модель всех приводов на dt.
func (s *Simulators) Step(dt time.Duration) {
	s.Hoist.Step(dt)
	s.Lever.Step(dt)
	s.Clamp.Step(dt)
}

type mechanismService struct {
	client    *mechanism.Client
	sims      *Simulators
	publisher telemetry.Publisher
	interval  time.Duration
	logger    *logging.Logger

	controllers map[string]controller
	names       []string

	mu     sync.RWMutex
	latest *models.Snapshot

	pollMu sync.Mutex
	poll   *activePoll
}

func NewMechanismService(client *mechanism.Client, sims *Simulators, publisher telemetry.Publisher, interval time.Duration, logger *logging.Logger) interfaces.MechanismService {
	s := &mechanismService{
		client:    client,
		sims:      sims,
		publisher: publisher,
		interval:  interval,
		logger:    logger.WithPrefix("MECHANISMS"),
	}
	s.registerControllers()
	return s
}
