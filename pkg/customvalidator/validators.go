package customvalidator

import (
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует доменные правила валидации.
// Правило interval12: межповерочный интервал задаётся целым числом месяцев,
// кратным 12 и не меньше 12 (12, 24, 36, ...).
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("interval12", isVerificationInterval)
}

func isVerificationInterval(fl validator.FieldLevel) bool {
	interval := fl.Field().Int()
	return interval >= 12 && interval%12 == 0
}
