package handlers

import (
	"net/http"

	"github.com/iwtcode/mechanismAdapter/internal/config"
	"github.com/iwtcode/mechanismAdapter/internal/interfaces"
	"github.com/iwtcode/mechanismAdapter/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		mechanisms := v1.Group("/mechanisms")
		{
			mechanisms.GET("", h.GetMechanisms)
			mechanisms.GET("/:name", h.GetMechanism)
			mechanisms.POST("/:name/target", h.SetTarget)
			mechanisms.POST("/:name/open-loop", h.SetOpenLoop)
			mechanisms.POST("/:name/voltage", h.SetVoltage)
			mechanisms.POST("/:name/stop", h.StopMechanism)
		}

		v1.GET("/alerts", h.GetAlerts)
		v1.POST("/stop", h.StopAll)
	}

	return router
}
