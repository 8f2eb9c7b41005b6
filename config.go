package mechanism

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Config хранит модель конфигурации библиотеки
type Config struct {
	ConstantsPath string
	LogLevel      string
	TickMs        int

	// Logger, если задан, используется вместо создаваемого по LogLevel
	Logger *logrus.Logger
}

const defaultTickMs = 20

// tick - период опроса по умолчанию. Неположительный TickMs дает 20 мс.
func (c *Config) tick() time.Duration {
	if c.TickMs <= 0 {
		return defaultTickMs * time.Millisecond
	}
	return time.Duration(c.TickMs) * time.Millisecond
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	constantsPath := os.Getenv("MECH_CONSTANTS_PATH")

	tickStr := os.Getenv("MECH_TICK_MS")
	tick, err := strconv.Atoi(tickStr)
	if err != nil || tick <= 0 {
		tick = defaultTickMs
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		ConstantsPath: constantsPath,
		LogLevel:      logLevel,
		TickMs:        tick,
	}
}
