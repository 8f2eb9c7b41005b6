package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort    string
	GinMode       string
	ConstantsPath string
	TickMs        int
	Telemetry     TelemetryConfig
	Logging       LoggerConfig
}

// TelemetryConfig содержит настройки приемника телеметрии
type TelemetryConfig struct {
	Sink         string
	KafkaBroker  string
	KafkaTopic   string
	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort:    getEnv("APP_PORT", "8082"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ConstantsPath: getEnv("MECH_CONSTANTS_PATH", ""),
		TickMs:        getEnvAsInt("MECH_TICK_MS", 20),
		Telemetry: TelemetryConfig{
			Sink:         getEnv("TELEMETRY_SINK", "log"),
			KafkaBroker:  getEnv("KAFKA_BROKER", "localhost:9092"),
			KafkaTopic:   getEnv("KAFKA_TOPIC", "mechanism_telemetry"),
			MQTTBroker:   getEnv("MQTT_BROKER", "tcp://localhost:1883"),
			MQTTTopic:    getEnv("MQTT_TOPIC", "mechanisms/telemetry"),
			MQTTClientID: getEnv("MQTT_CLIENT_ID", ""),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
	}

	if config.TickMs <= 0 {
		config.TickMs = 20
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}
