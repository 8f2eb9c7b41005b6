package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	Unavailable         = "unavailable"
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

func (a *AppError) Unwrap() error {
	if a == nil {
		return nil
	}
	return a.Err
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

var (
	ErrMechanismNotFound = errors.New("mechanism not found")
	ErrUnknownState      = errors.New("unknown named state")
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrNoSnapshot        = errors.New("no telemetry collected yet")
)

// FromError сопоставляет доменную ошибку с AppError. Неизвестные ошибки считаются внутренними.
func FromError(err error) *AppError {
	var appErr *AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrMechanismNotFound):
		return NewAppError(http.StatusNotFound, NotFound, err, true)
	case errors.Is(err, ErrUnknownState), errors.Is(err, ErrUnknownUnit), errors.Is(err, ErrInvalidRequest):
		return NewAppError(http.StatusBadRequest, BadRequest, err, true)
	case errors.Is(err, ErrNoSnapshot):
		return NewAppError(http.StatusServiceUnavailable, Unavailable, err, true)
	default:
		return NewAppError(http.StatusInternalServerError, InternalServerError, err, false)
	}
}
