package app

import (
	"context"
	"net/http"
	"time"

	mechanism "github.com/iwtcode/mechanismAdapter"
	"github.com/iwtcode/mechanismAdapter/internal/adapters/handlers"
	"github.com/iwtcode/mechanismAdapter/internal/config"
	"github.com/iwtcode/mechanismAdapter/internal/interfaces"
	"github.com/iwtcode/mechanismAdapter/internal/middleware/logging"
	"github.com/iwtcode/mechanismAdapter/internal/services/mechanism_service"
	"github.com/iwtcode/mechanismAdapter/internal/usecases"
	"github.com/iwtcode/mechanismAdapter/telemetry"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		ClientModule,
		TelemetryModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Invoke-функции для запуска фоновых задач и хуков жизненного цикла
		fx.Invoke(InvokePolling),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(lc fx.Lifecycle, cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	logger := logging.NewLogger(loggerCfg, "MechanismApp")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return logger.Close()
		},
	})
	return logger
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

// ProvideClient собирает клиент механизмов поверх программных приводов.
// Библиотечный код пишет в тот же logrus-логгер, что и сервис.
func ProvideClient(cfg *config.AppConfig, sims *mechanism_service.Simulators, logger *logging.Logger) (*mechanism.Client, error) {
	return mechanism.New(&mechanism.Config{
		ConstantsPath: cfg.ConstantsPath,
		LogLevel:      cfg.Logging.Level,
		TickMs:        cfg.TickMs,
		Logger:        logger.Logrus(),
	}, sims.Drivers())
}

var ClientModule = fx.Module("client_module",
	fx.Provide(
		mechanism_service.NewSimulators,
		ProvideClient,
	),
)

func ProvidePublisher(lc fx.Lifecycle, cfg *config.AppConfig, logger *logging.Logger) (telemetry.Publisher, error) {
	publisher, err := telemetry.New(telemetry.Config{
		Sink:         cfg.Telemetry.Sink,
		KafkaBroker:  cfg.Telemetry.KafkaBroker,
		KafkaTopic:   cfg.Telemetry.KafkaTopic,
		MQTTBroker:   cfg.Telemetry.MQTTBroker,
		MQTTTopic:    cfg.Telemetry.MQTTTopic,
		MQTTClientID: cfg.Telemetry.MQTTClientID,
	}, logger.Logrus())
	if err != nil {
		return nil, err
	}
	logger.Info("Telemetry sink configured", "sink", cfg.Telemetry.Sink)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}

var TelemetryModule = fx.Module("telemetry_module",
	fx.Provide(ProvidePublisher),
)

func ProvideMechanismService(cfg *config.AppConfig, client *mechanism.Client, sims *mechanism_service.Simulators, publisher telemetry.Publisher, logger *logging.Logger) interfaces.MechanismService {
	interval := time.Duration(cfg.TickMs) * time.Millisecond
	return mechanism_service.NewMechanismService(client, sims, publisher, interval, logger)
}

var ServiceModule = fx.Module("service_module",
	fx.Provide(ProvideMechanismService),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokePolling запускает цикл опроса при старте и останавливает механизмы при завершении.
func InvokePolling(lc fx.Lifecycle, svc interfaces.MechanismService, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting mechanism polling...")
			return svc.StartPolling(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping mechanism polling...")
			if err := svc.StopPolling(ctx); err != nil {
				logger.Warn("Polling did not stop in time", "error", err)
			}
			if err := svc.StopAll(); err != nil {
				logger.Error("Failed to stop mechanisms", "error", err)
			}
			return nil
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      h,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
