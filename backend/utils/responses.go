package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SuccessResponse структура для успешных ответов
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success создает успешный JSON ответ
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error создает JSON ответ с ошибкой
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// ValidationError создает JSON ответ для ошибок валидации
func ValidationError(c *fiber.Ctx, err error) error {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return Error(c, fiber.StatusBadRequest, "Invalid input", fields)
}

// RespondError maps an error to its HTTP status. Internal and transient
// details are logged, never sent to the client.
func RespondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationError(c, err)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Error(c, fiberErr.Code, fiberErr.Message)
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewError(KindInternal, "", err)
	}

	switch appErr.Kind {
	case KindNotFound:
		return Error(c, fiber.StatusNotFound, appErr.Message)
	case KindInvalidInput:
		return Error(c, fiber.StatusBadRequest, appErr.Message)
	case KindConflict:
		return Error(c, fiber.StatusConflict, appErr.Message)
	case KindUnauthorized:
		return Error(c, fiber.StatusUnauthorized, appErr.Message)
	case KindForbidden:
		return Error(c, fiber.StatusForbidden, appErr.Message)
	case KindTransient:
		log.Warn("transient failure", zap.String("path", c.Path()), zap.Error(err))
		c.Set(fiber.HeaderRetryAfter, "1")
		return Error(c, fiber.StatusServiceUnavailable, "Service temporarily unavailable, please retry")
	default:
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
