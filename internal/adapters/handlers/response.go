package handlers

import (
	"net/http"

	"github.com/iwtcode/mechanismAdapter/internal/domain/models"
	"github.com/iwtcode/mechanismAdapter/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    statusCode,
			"message": errorMessage,
		},
	})
}

// FromError подбирает код ответа по доменной ошибке
func (h *Handler) FromError(c *gin.Context, err error) {
	appErr := errors.FromError(err)
	h.ErrorResponse(c, appErr.Err, appErr.Code, appErr.Message, appErr.IsUserFacing)
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// OK возвращает сообщение об успешной операции
func (h *Handler) OK(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.MessageResponse{Status: "ok", Message: message})
}
