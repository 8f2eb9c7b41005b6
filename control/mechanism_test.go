package control

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/alerts"
	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type command struct {
	mode  actuator.Mode
	value float64
}

// recordingDriver запоминает команды и отдает заданную позицию.
type recordingDriver struct {
	mu       sync.Mutex
	position float64
	commands []command
	err      error
}

func (d *recordingDriver) ReadPosition() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position
}

func (d *recordingDriver) setPosition(p float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.position = p
}

func (d *recordingDriver) record(mode actuator.Mode, v float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = append(d.commands, command{mode: mode, value: v})
	return d.err
}

func (d *recordingDriver) CommandPosition(r float64) error { return d.record(actuator.ModePosition, r) }
func (d *recordingDriver) CommandOpenLoop(l float64) error { return d.record(actuator.ModeOpenLoop, l) }
func (d *recordingDriver) CommandVoltage(v float64) error  { return d.record(actuator.ModeVoltage, v) }
func (d *recordingDriver) CommandStop() error              { return d.record(actuator.ModeIdle, 0) }

func (d *recordingDriver) last() command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commands[len(d.commands)-1]
}

func (d *recordingDriver) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.commands)
}

func newHoist(t *testing.T) (*Hoist, *recordingDriver, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	drv := &recordingDriver{}
	return NewHoist(constants.Default(), drv, logger, nil), drv, hook
}

func TestHoistScenario(t *testing.T) {
	hoist, drv, _ := newHoist(t)

	require.Equal(t, units.Unknown, hoist.IsAtTarget())

	require.NoError(t, hoist.SetTargetByName(units.L1))
	require.Equal(t, actuator.ModePosition, drv.last().mode)
	require.InDelta(t, 19.9156, drv.last().value, 0.01)

	drv.setPosition(19.90)
	require.Equal(t, units.True, hoist.IsAtTarget())

	require.NoError(t, hoist.SetOpenLoop(0.3))
	require.Equal(t, units.Unknown, hoist.IsAtTarget())
	require.Equal(t, command{mode: actuator.ModeOpenLoop, value: 0.3}, drv.last())
}

func TestStopClearsTargetEvenWhenWithinTolerance(t *testing.T) {
	hoist, drv, _ := newHoist(t)

	drv.setPosition(0)
	require.NoError(t, hoist.SetTargetByName(units.Home))
	require.Equal(t, units.True, hoist.IsAtTarget())

	require.NoError(t, hoist.Stop())
	require.Equal(t, units.Unknown, hoist.IsAtTarget())
	require.Equal(t, actuator.ModeIdle, drv.last().mode)

	require.NoError(t, hoist.SetTargetByName(units.Home))
	require.NoError(t, hoist.SetVoltage(2))
	require.Equal(t, units.Unknown, hoist.IsAtTarget())
	_, ok := hoist.Target()
	require.False(t, ok)
}

func TestNewTargetReplacesOld(t *testing.T) {
	hoist, drv, _ := newHoist(t)

	require.NoError(t, hoist.SetTargetByName(units.L2))
	require.NoError(t, hoist.SetTargetByName(units.L4))

	target, ok := hoist.Target()
	require.True(t, ok)
	l4, _ := hoist.Spec().States.Lookup(units.L4)
	require.Equal(t, l4, target)
	require.Equal(t, 2, drv.count())
	require.Equal(t, l4.Raw(), drv.last().value)
}

func TestNilTargetIsRejected(t *testing.T) {
	hoist, drv, hook := newHoist(t)

	require.NoError(t, hoist.SetTarget(nil))
	require.Zero(t, drv.count())
	require.Equal(t, units.Unknown, hoist.IsAtTarget())
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	nan := units.FromRaw[units.Hoist](math.NaN())
	require.NoError(t, hoist.SetTarget(&nan))
	require.Zero(t, drv.count())

	require.NoError(t, hoist.SetTargetByName(units.Closed))
	require.Zero(t, drv.count())
	require.Equal(t, units.Closed, hook.LastEntry().Data["state"])
}

func TestNilTargetKeepsExistingTarget(t *testing.T) {
	hoist, _, _ := newHoist(t)

	require.NoError(t, hoist.SetTargetByName(units.L3))
	require.NoError(t, hoist.SetTarget(nil))

	target, ok := hoist.Target()
	require.True(t, ok)
	l3, _ := hoist.Spec().States.Lookup(units.L3)
	require.Equal(t, l3, target)
}

func TestOutputIsClamped(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	drv := &recordingDriver{}
	clamp := NewClamp(constants.Default(), drv, logger, nil)

	require.NoError(t, clamp.SetOpenLoop(0.9))
	require.Equal(t, 0.5, drv.last().value)

	require.NoError(t, clamp.SetOpenLoop(-3))
	require.Equal(t, -0.5, drv.last().value)

	require.NoError(t, clamp.SetOpenLoop(0.2))
	require.Equal(t, 0.2, drv.last().value)

	require.NoError(t, clamp.SetVoltage(24))
	require.Equal(t, 16.0, drv.last().value)

	require.NoError(t, clamp.SetVoltage(-100))
	require.Equal(t, -16.0, drv.last().value)

	require.NoError(t, clamp.SetOpenLoop(math.NaN()))
	require.Equal(t, 0.0, drv.last().value)

	require.NoError(t, clamp.SetVoltage(math.Inf(1)))
	require.Equal(t, 0.0, drv.last().value)
}

func TestCommandFailureIsReported(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	reg := alerts.NewRegistry(logger)
	drv := &recordingDriver{err: actuator.ErrRejected}
	lever := NewLever(constants.Default(), drv, logger, reg)

	err := lever.SetTargetByName(units.Closed)
	require.ErrorIs(t, err, ErrCommandFailed)
	require.ErrorIs(t, err, actuator.ErrRejected)

	failed, ok := reg.Get("lever.command_failed")
	require.True(t, ok)
	require.True(t, failed.Active())
	require.NotEmpty(t, hook.AllEntries())

	_, hasTarget := lever.Target()
	require.True(t, hasTarget, "target stays so the next tick can re-issue it")

	drv.mu.Lock()
	drv.err = nil
	drv.mu.Unlock()

	require.NoError(t, lever.Stop())
	require.False(t, failed.Active())
	require.Equal(t, 2, drv.count())
}

func TestSeparateTargetTolerance(t *testing.T) {
	set, err := constants.Parse([]byte("hoist:\n  target_tolerance:\n    value: 0.1\n    unit: inches\n"))
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	drv := &recordingDriver{}
	hoist := NewHoist(set, drv, logger, nil)

	require.NoError(t, hoist.SetTargetByName(units.L1))
	l1, _ := hoist.Spec().States.Lookup(units.L1)
	drv.setPosition(l1.Raw() + 0.5)

	state, ok := hoist.State()
	require.True(t, ok)
	require.Equal(t, units.L1, state)
	require.Equal(t, units.False, hoist.IsAtTarget())
}

func TestDistanceToTarget(t *testing.T) {
	hoist, drv, _ := newHoist(t)

	_, ok := hoist.DistanceToTarget()
	require.False(t, ok)

	drv.setPosition(10)
	require.NoError(t, hoist.SetTarget(units.FromRaw[units.Hoist](25).Ptr()))
	d, ok := hoist.DistanceToTarget()
	require.True(t, ok)
	require.Equal(t, 15.0, d.Raw())
}

func TestTelemetryUsesNoneSentinel(t *testing.T) {
	hoist, drv, _ := newHoist(t)
	drv.setPosition(5)

	tm := hoist.Telemetry()
	require.Equal(t, "hoist", tm.Name)
	require.Equal(t, units.UnitInches, tm.Unit)
	require.Equal(t, models.None, tm.PositionState)
	require.Equal(t, models.None, tm.Target)
	require.Equal(t, models.None, tm.TargetRotations)
	require.Equal(t, models.None, tm.TargetState)
	require.Equal(t, models.None, tm.DistanceToTarget)
	require.Equal(t, "unknown", tm.AtTarget)
	require.InDelta(t, 5*61/101.244, tm.Position, 1e-9)

	require.NoError(t, hoist.SetTargetByName(units.Home))
	drv.setPosition(0)
	tm = hoist.Telemetry()
	require.Equal(t, "HOME", tm.PositionState)
	require.Equal(t, "HOME", tm.TargetState)
	require.Equal(t, "0", tm.Target)
	require.Equal(t, "true", tm.AtTarget)
	require.Equal(t, string(actuator.ModePosition), tm.ControlMode)
}

func TestPeriodicRaisesStatusAlerts(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	reg := alerts.NewRegistry(logger)
	sim := actuator.NewSimulator(actuator.DefaultSimulatorConfig(2))
	lever := NewLever(constants.Default(), sim, logger, reg)

	lever.Periodic()
	require.Empty(t, reg.Active())

	sim.SetConnected(false)
	sim.SetTemperature(80)
	sim.SetCriticalFaults(true)
	tm := lever.Periodic()
	require.False(t, tm.Connected)

	keys := []string{}
	for _, a := range reg.Active() {
		keys = append(keys, a.Key)
	}
	require.Equal(t, []string{"lever.disconnected", "lever.faults", "lever.overheating"}, keys)

	sim.SetConnected(true)
	sim.SetTemperature(40)
	sim.SetCriticalFaults(false)
	lever.Periodic()
	require.Empty(t, reg.Active())
}

func TestPeriodicDoesNotTouchTarget(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	sim := actuator.NewSimulator(actuator.DefaultSimulatorConfig(3))
	clamp := NewClamp(constants.Default(), sim, logger, nil)

	require.NoError(t, clamp.SetTargetByName(units.Closed))
	for i := 0; i < 100; i++ {
		sim.Step(20 * time.Millisecond)
		clamp.Periodic()
	}

	_, ok := clamp.Target()
	require.True(t, ok)
	require.Equal(t, units.True, clamp.IsAtTarget())
	state, ok := clamp.State()
	require.True(t, ok)
	require.Equal(t, units.Closed, state)
}

func TestLeverDegreesTarget(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	drv := &recordingDriver{}
	lever := NewLever(constants.Default(), drv, logger, nil)

	deg, ok := lever.Conversion(units.UnitDegrees)
	require.True(t, ok)
	require.NoError(t, lever.SetTarget(units.FromUnits[units.Lever](3, deg).Ptr()))
	require.InDelta(t, 0.6667, drv.last().value, 1e-4)

	_, ok = lever.Conversion(units.UnitInches)
	require.False(t, ok)
}

func TestConcurrentCommandsAndQueries(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	sim := actuator.NewSimulator(actuator.DefaultSimulatorConfig(3))
	hoist := NewHoist(constants.Default(), sim, logger, alerts.NewRegistry(logger))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch (i + j) % 4 {
				case 0:
					_ = hoist.SetTargetByName(units.L2)
				case 1:
					_ = hoist.SetOpenLoop(0.1)
				case 2:
					_ = hoist.IsAtTarget()
				default:
					_ = hoist.Periodic()
				}
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, hoist.Stop())
	require.Equal(t, units.Unknown, hoist.IsAtTarget())
}
