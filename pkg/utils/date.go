package utils

import (
	"time"

	apperrors "deltica/pkg/errors"

	"github.com/aarondl/null/v8"
)

const DateLayout = "2006-01-02"

func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("некорректная дата %q, ожидается формат ГГГГ-ММ-ДД", value)
	}
	return parsed, nil
}

// ParseNullDate возвращает невалидный null.Time для пустой строки.
func ParseNullDate(value string) (null.Time, error) {
	if value == "" {
		return null.Time{}, nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return null.Time{}, err
	}
	return null.TimeFrom(parsed), nil
}

func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}

func FormatNullDate(value null.Time) string {
	if !value.Valid {
		return ""
	}
	return value.Time.Format(DateLayout)
}
