package utils

import (
	"errors"
	"net/http"

	apperrors "deltica/pkg/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

// ErrorResponse переводит ошибку ядра в HTTP-ответ.
// Наружу уходит только "не найдено" или общее сообщение об ошибке,
// детали остаются в логах.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "Внутренняя ошибка сервера"

	var httpErr *apperrors.HttpError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		message = apperrors.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrBadRequest):
		code = http.StatusBadRequest
		message = apperrors.ErrBadRequest.Error()
	case errors.Is(err, apperrors.ErrInvalidInterval):
		code = http.StatusBadRequest
		message = apperrors.ErrInvalidInterval.Error()
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		code = http.StatusBadRequest
		message = invalidInput.Message
	}

	if code == http.StatusInternalServerError {
		logger.Error("необработанная ошибка", zap.Error(err))
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
