package utils

import (
	"net/http"

	apperrors "deltica/pkg/errors"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		details := make(map[string]string)
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range validationErrors {
				details[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewHttpError(http.StatusBadRequest, "Ошибка валидации данных", err, details)
	}
	return nil
}
