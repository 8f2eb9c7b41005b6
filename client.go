package mechanism

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/mechanismAdapter/actuator"
	"github.com/iwtcode/mechanismAdapter/alerts"
	"github.com/iwtcode/mechanismAdapter/constants"
	"github.com/iwtcode/mechanismAdapter/control"
	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/iwtcode/mechanismAdapter/units"
	"github.com/sirupsen/logrus"
)

// Drivers - драйверы приводов всех механизмов.
type Drivers struct {
	Hoist actuator.Driver
	Lever actuator.Driver
	Clamp actuator.Driver
}

var ErrMissingDriver = errors.New("missing actuator driver")

// Client является основной точкой входа для работы с механизмами.
type Client struct {
	config    *Config
	constants *constants.Set
	logger    *logrus.Logger
	alerts    *alerts.Registry
	runID     string
	sequence  atomic.Uint64

	hoist *control.Hoist
	lever *control.Lever
	clamp *control.Clamp
}

// New создает клиент: настраивает логгер, загружает константы и собирает фасады механизмов.
//
// Канал предупреждений арифметики величин в units один на процесс: каждый
// New переключает его на свой логгер, так что при нескольких клиентах
// предупреждения получает созданный последним.
func New(cfg *Config, drivers Drivers) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = NewLogger(cfg.LogLevel)
	}

	if drivers.Hoist == nil || drivers.Lever == nil || drivers.Clamp == nil {
		return nil, ErrMissingDriver
	}

	set := constants.Default()
	if cfg.ConstantsPath != "" {
		loaded, err := constants.Load(cfg.ConstantsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load mechanism constants: %w", err)
		}
		set = loaded
	}

	// Опасные конфигурации таблиц только сообщаются, но не исправляются
	for name, hazards := range set.Hazards() {
		for _, h := range hazards {
			logger.WithFields(logrus.Fields{"mechanism": name, "hazard": h.Kind}).Warn(h.String())
		}
	}

	// Предупреждения арифметики величин идут в тот же логгер (глобально, см. выше)
	units.SetWarningLogger(logger)

	registry := alerts.NewRegistry(logger)

	return &Client{
		config:    cfg,
		constants: set,
		logger:    logger,
		alerts:    registry,
		runID:     uuid.NewString(),
		hoist:     control.NewHoist(set, drivers.Hoist, logger, registry),
		lever:     control.NewLever(set, drivers.Lever, logger, registry),
		clamp:     control.NewClamp(set, drivers.Clamp, logger, registry),
	}, nil
}

// NewLogger создает logrus-логгер по строковому уровню. "off" и "none" отключают вывод.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()

	if level == "off" || level == "none" {
		logger.SetOutput(io.Discard)
	} else {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		logger.SetLevel(lvl)
		logger.SetOutput(os.Stdout)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// Hoist возвращает подъемник.
func (c *Client) Hoist() *control.Hoist { return c.hoist }

// Lever возвращает рычаг.
func (c *Client) Lever() *control.Lever { return c.lever }

// Clamp возвращает зажим.
func (c *Client) Clamp() *control.Clamp { return c.clamp }

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger { return c.logger }

// Constants возвращает загруженные константы механизмов.
func (c *Client) Constants() *constants.Set { return c.constants }

// Alerts возвращает реестр оповещений.
func (c *Client) Alerts() *alerts.Registry { return c.alerts }

// RunID - идентификатор запуска, которым помечается телеметрия.
func (c *Client) RunID() string { return c.runID }

// StopAll останавливает все механизмы. Ошибки всех приводов собираются вместе.
func (c *Client) StopAll() error {
	return errors.Join(c.hoist.Stop(), c.lever.Stop(), c.clamp.Stop())
}

// Periodic выполняет один проход цикла управления по всем механизмам.
// Цели механизмов при этом не меняются.
func (c *Client) Periodic() *models.Snapshot {
	mechanisms := []models.MechanismTelemetry{
		c.hoist.Periodic(),
		c.lever.Periodic(),
		c.clamp.Periodic(),
	}

	return &models.Snapshot{
		RunID:      c.runID,
		Sequence:   c.sequence.Add(1),
		Timestamp:  time.Now().UTC(),
		Mechanisms: mechanisms,
		Alerts:     c.alerts.Active(),
	}
}
