package mechanism

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/joho/godotenv"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type simulators struct {
	hoist, lever, clamp *actuator.Simulator
}

func setupTest(t *testing.T, cfg *Config) (*Client, simulators) {
	t.Helper()
	sims := simulators{
		hoist: actuator.NewSimulator(actuator.DefaultSimulatorConfig(3)),
		lever: actuator.NewSimulator(actuator.DefaultSimulatorConfig(2)),
		clamp: actuator.NewSimulator(actuator.DefaultSimulatorConfig(3)),
	}
	c, err := New(cfg, Drivers{Hoist: sims.hoist, Lever: sims.lever, Clamp: sims.clamp})
	require.NoError(t, err, "failed to create client")
	require.NotNil(t, c)
	return c, sims
}

func quietConfig() *Config {
	return &Config{LogLevel: "off", TickMs: 20}
}

func TestLoadFromDotEnv(t *testing.T) {
	t.Setenv("MECH_TICK_MS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MECH_CONSTANTS_PATH", "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MECH_TICK_MS=50\nLOG_LEVEL=debug\nMECH_CONSTANTS_PATH=/etc/mech.yaml\n"), 0o644))
	require.NoError(t, godotenv.Overload(path))

	cfg := Load()
	require.Equal(t, 50, cfg.TickMs)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/etc/mech.yaml", cfg.ConstantsPath)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MECH_TICK_MS", "garbage")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("MECH_CONSTANTS_PATH", "")

	cfg := Load()
	require.Equal(t, 20, cfg.TickMs)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.ConstantsPath)
}

func TestNewRequiresAllDrivers(t *testing.T) {
	_, err := New(quietConfig(), Drivers{Hoist: actuator.NewSimulator(actuator.DefaultSimulatorConfig(3))})
	require.ErrorIs(t, err, ErrMissingDriver)
}

func TestNewWithConstantsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mechanisms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clamp:\n  max_duty_cycle: 0.25\n"), 0o644))

	cfg := quietConfig()
	cfg.ConstantsPath = path
	c, sims := setupTest(t, cfg)

	require.Equal(t, 0.25, c.Constants().Clamp.MaxDutyCycle)
	require.NoError(t, c.Clamp().SetOpenLoop(1))
	_, level := sims.clamp.LastCommand()
	require.Equal(t, 0.25, level)

	cfg.ConstantsPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := New(cfg, Drivers{Hoist: sims.hoist, Lever: sims.lever, Clamp: sims.clamp})
	require.Error(t, err)
}

func TestPeriodicSnapshot(t *testing.T) {
	c, sims := setupTest(t, quietConfig())

	require.NoError(t, c.Hoist().SetTargetByName(units.L1))
	sims.hoist.SetPosition(19.90)

	snap := c.Periodic()
	require.Equal(t, c.RunID(), snap.RunID)
	require.Equal(t, uint64(1), snap.Sequence)
	require.Len(t, snap.Mechanisms, 3)

	hoist, ok := snap.Mechanism("hoist")
	require.True(t, ok)
	require.Equal(t, "L1", hoist.PositionState)
	require.Equal(t, "L1", hoist.TargetState)
	require.Equal(t, "true", hoist.AtTarget)

	lever, ok := snap.Mechanism("lever")
	require.True(t, ok)
	require.Equal(t, models.None, lever.Target)
	require.Equal(t, "unknown", lever.AtTarget)

	require.NoError(t, c.Hoist().SetOpenLoop(0.3))
	hoist, _ = c.Periodic().Mechanism("hoist")
	require.Equal(t, "unknown", hoist.AtTarget)
	require.Equal(t, models.None, hoist.TargetState)
}

func TestPeriodicReportsAlerts(t *testing.T) {
	c, sims := setupTest(t, quietConfig())

	sims.clamp.SetTemperature(95)
	snap := c.Periodic()
	require.Len(t, snap.Alerts, 1)
	require.Equal(t, "clamp.overheating", snap.Alerts[0].Key)

	sims.clamp.SetTemperature(30)
	require.Empty(t, c.Periodic().Alerts)
}

func TestStopAll(t *testing.T) {
	c, sims := setupTest(t, quietConfig())

	require.NoError(t, c.Lever().SetTargetByName(units.Closed))
	sims.hoist.FailCommands(1)

	err := c.StopAll()
	require.Error(t, err)
	require.Equal(t, units.Unknown, c.Lever().IsAtTarget())
	require.Equal(t, units.Unknown, c.Hoist().IsAtTarget())
}

func TestStartPolling(t *testing.T) {
	c, sims := setupTest(t, quietConfig())
	require.NoError(t, c.Clamp().SetTargetByName(units.Closed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := c.StartPolling(ctx, 5*time.Millisecond)

	var last *models.Snapshot
	for i := 0; i < 3; i++ {
		sims.clamp.Step(time.Second)
		select {
		case snap, ok := <-results:
			require.True(t, ok)
			last = snap
		case <-time.After(2 * time.Second):
			t.Fatal("no snapshot received")
		}
	}
	require.GreaterOrEqual(t, last.Sequence, uint64(3))

	cancel()
	for range results {
	}
}

func TestStartPollingNonPositiveInterval(t *testing.T) {
	cfg := quietConfig()
	cfg.TickMs = 0
	c, _ := setupTest(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, interval := range []time.Duration{0, -time.Second} {
		results := c.StartPolling(ctx, interval)
		select {
		case snap, ok := <-results:
			require.True(t, ok)
			require.Len(t, snap.Mechanisms, 3)
		case <-time.After(2 * time.Second):
			t.Fatalf("no snapshot for interval %v", interval)
		}
	}

	cancel()
}

func TestArithmeticWarningsFollowLatestClient(t *testing.T) {
	defer units.SetWarningLogger(nil)

	first, firstHook := logtest.NewNullLogger()
	second, secondHook := logtest.NewNullLogger()

	cfg := quietConfig()
	cfg.Logger = first
	setupTest(t, cfg)
	cfg = quietConfig()
	cfg.Logger = second
	setupTest(t, cfg)

	q := units.FromRaw[units.Hoist](1)
	q.Add(nil)

	familyWarnings := func(hook *logtest.Hook) int {
		n := 0
		for _, e := range hook.AllEntries() {
			if e.Data["family"] == "HoistPosition" {
				n++
			}
		}
		return n
	}
	require.Zero(t, familyWarnings(firstHook))
	require.Equal(t, 1, familyWarnings(secondHook))
}
