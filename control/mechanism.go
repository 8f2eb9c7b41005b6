package control

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/alerts"
	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/sirupsen/logrus"
)

// OverheatThresholdC - температура привода, начиная с которой включается оповещение.
const OverheatThresholdC = 80

// ErrCommandFailed оборачивает ошибку драйвера при отклонении команды.
var ErrCommandFailed = errors.New("actuator command failed")

// Spec - неизменяемое описание механизма: единицы, таблица положений, допуски и ограничения выхода.
type Spec[F units.Family] struct {
	Name            string
	ActuatorID      int
	Display         units.Conversion
	Conversions     []units.Conversion
	States          *units.StateTable[F]
	TargetTolerance units.Quantity[F]
	MaxDutyCycle    float64
	MaxVoltage      float64
}

// Mechanism - фасад одного механизма над драйвером привода.
// Все методы неблокирующие; состояние защищено одним мьютексом механизма,
// общих блокировок между механизмами нет.
type Mechanism[F units.Family] struct {
	mu      sync.Mutex
	spec    Spec[F]
	driver  actuator.Driver
	tracker *Tracker[F]
	mode    actuator.Mode
	log     *logrus.Entry

	disconnected  *alerts.Alert
	overheating   *alerts.Alert
	faults        *alerts.Alert
	commandFailed *alerts.Alert
}

// New создает механизм без цели. registry может быть nil, тогда оповещения не регистрируются.
func New[F units.Family](spec Spec[F], driver actuator.Driver, logger logrus.FieldLogger, registry *alerts.Registry) *Mechanism[F] {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if spec.Display.RawPerUnit == 0 {
		spec.Display = units.Identity()
	}

	m := &Mechanism[F]{
		spec:    spec,
		driver:  driver,
		tracker: NewTracker(spec.TargetTolerance),
		mode:    actuator.ModeIdle,
		log:     logger.WithField("mechanism", spec.Name),
	}

	if registry != nil {
		title := spec.Name
		if title != "" {
			title = strings.ToUpper(title[:1]) + title[1:]
		}
		m.disconnected = registry.Add(spec.Name+".disconnected",
			fmt.Sprintf("Missing connection to %s actuator (ID %d)", spec.Name, spec.ActuatorID), alerts.Error)
		m.overheating = registry.Add(spec.Name+".overheating",
			fmt.Sprintf("%s actuator (ID %d) is overheating", title, spec.ActuatorID), alerts.Warning)
		m.faults = registry.Add(spec.Name+".faults",
			fmt.Sprintf("Potentially critical faults active on %s actuator (ID %d)", spec.Name, spec.ActuatorID), alerts.Warning)
		m.commandFailed = registry.Add(spec.Name+".command_failed",
			fmt.Sprintf("Failed to apply command to %s actuator (ID %d)", spec.Name, spec.ActuatorID), alerts.Error)
	}
	return m
}

// Name возвращает имя механизма.
func (m *Mechanism[F]) Name() string {
	return m.spec.Name
}

// Spec возвращает описание механизма.
func (m *Mechanism[F]) Spec() Spec[F] {
	return m.spec
}

// CurrentPosition читает позицию привода.
func (m *Mechanism[F]) CurrentPosition() units.Quantity[F] {
	return units.FromRaw[F](m.driver.ReadPosition())
}

// SetTarget задает цель замкнутого контура и передает ее драйверу.
// nil или нечисловая цель отклоняется с предупреждением, состояние не меняется.
func (m *Mechanism[F]) SetTarget(target *units.Quantity[F]) error {
	if target == nil {
		m.log.Warn("cannot set target position to a nil target")
		return nil
	}
	if !target.IsFinite() {
		m.log.WithField("target", target.Raw()).Warn("cannot set target position to a non-finite value")
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracker.Set(*target)
	m.mode = actuator.ModePosition
	return m.report("position", m.driver.CommandPosition(target.Raw()))
}

// SetTargetByName задает цель по имени положения из таблицы механизма.
func (m *Mechanism[F]) SetTargetByName(name units.StateName) error {
	q, ok := m.spec.States.Lookup(name)
	if !ok {
		m.log.WithField("state", name).Warn("cannot set target to an unknown named state")
		return nil
	}
	return m.SetTarget(&q)
}

// SetOpenLoop подает скважность в диапазоне [-MaxDutyCycle, MaxDutyCycle] и сбрасывает цель.
func (m *Mechanism[F]) SetOpenLoop(level float64) error {
	level = m.limit("duty cycle", level, m.spec.MaxDutyCycle)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracker.Clear()
	m.mode = actuator.ModeOpenLoop
	return m.report("open loop", m.driver.CommandOpenLoop(level))
}

// SetVoltage подает напряжение в диапазоне [-MaxVoltage, MaxVoltage] и сбрасывает цель.
func (m *Mechanism[F]) SetVoltage(volts float64) error {
	volts = m.limit("voltage", volts, m.spec.MaxVoltage)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracker.Clear()
	m.mode = actuator.ModeVoltage
	return m.report("voltage", m.driver.CommandVoltage(volts))
}

// Stop останавливает привод и сбрасывает цель.
func (m *Mechanism[F]) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tracker.Clear()
	m.mode = actuator.ModeIdle
	return m.report("stop", m.driver.CommandStop())
}

// IsAtTarget возвращает Unknown, если цели нет.
func (m *Mechanism[F]) IsAtTarget() units.TriState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.AtTarget(m.CurrentPosition())
}

// DistanceToTarget возвращает target - position, если цель задана.
func (m *Mechanism[F]) DistanceToTarget() (units.Quantity[F], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Distance(m.CurrentPosition())
}

// Target возвращает текущую цель.
func (m *Mechanism[F]) Target() (units.Quantity[F], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Target()
}

// State классифицирует текущую позицию по таблице именованных положений.
func (m *Mechanism[F]) State() (units.StateName, bool) {
	return m.spec.States.Classify(m.CurrentPosition())
}

// Classify классифицирует произвольную величину по таблице механизма.
func (m *Mechanism[F]) Classify(q units.Quantity[F]) (units.StateName, bool) {
	return m.spec.States.Classify(q)
}

// Conversion ищет перевод единиц механизма по имени.
func (m *Mechanism[F]) Conversion(unit string) (units.Conversion, bool) {
	if unit == "" || unit == units.UnitRotations {
		return units.Identity(), true
	}
	for _, c := range m.spec.Conversions {
		if c.Unit == unit {
			return c, true
		}
	}
	return units.Conversion{}, false
}

// Telemetry собирает проекцию состояния для логов и отображения, не меняя цель.
func (m *Mechanism[F]) Telemetry() models.MechanismTelemetry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.telemetry()
}

// Periodic - проход одного цикла управления: телеметрия и обновление оповещений.
func (m *Mechanism[F]) Periodic() models.MechanismTelemetry {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.telemetry()
	if m.disconnected != nil {
		m.disconnected.Set(!t.Connected)
		m.overheating.Set(math.Abs(t.TemperatureC) >= OverheatThresholdC)
		m.faults.Set(t.CriticalFaults)
	}
	return t
}

func (m *Mechanism[F]) telemetry() models.MechanismTelemetry {
	pos := m.CurrentPosition()
	state, ok := m.spec.States.Classify(pos)

	t := models.MechanismTelemetry{
		Name:              m.spec.Name,
		ActuatorID:        m.spec.ActuatorID,
		Unit:              m.spec.Display.Unit,
		PositionRotations: pos.Raw(),
		Position:          pos.ToUnits(m.spec.Display),
		PositionState:     units.FormatState(state, ok),
		TargetRotations:   models.None,
		Target:            models.None,
		TargetState:       models.None,
		DistanceToTarget:  models.None,
		AtTarget:          m.tracker.AtTarget(pos).String(),
		ControlMode:       string(m.mode),
		Connected:         true,
	}

	if target, ok := m.tracker.Target(); ok {
		targetState, named := m.spec.States.Classify(target)
		distance, _ := m.tracker.Distance(pos)
		t.TargetRotations = formatFloat(target.Raw())
		t.Target = formatFloat(target.ToUnits(m.spec.Display))
		t.TargetState = units.FormatState(targetState, named)
		t.DistanceToTarget = formatFloat(distance.ToUnits(m.spec.Display))
	}

	if sr, ok := m.driver.(actuator.StatusReader); ok {
		st := sr.Status()
		t.Connected = st.Connected
		t.TemperatureC = st.TemperatureC
		t.CriticalFaults = st.CriticalFaults
	}
	return t
}

// limit ограничивает выход по модулю. Нечисловой запрос заменяется нулем.
func (m *Mechanism[F]) limit(what string, v, bound float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		m.log.WithField(what, v).Warn("non-finite output request replaced with zero")
		return 0
	}
	return math.Min(math.Max(v, -bound), bound)
}

func (m *Mechanism[F]) report(command string, err error) error {
	if err != nil {
		m.log.WithError(err).WithField("command", command).Error("actuator rejected command")
		m.commandFailed.Set(true)
		return fmt.Errorf("%s %s: %w: %w", m.spec.Name, command, ErrCommandFailed, err)
	}
	m.commandFailed.Set(false)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
