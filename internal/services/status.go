package services

import (
	"time"

	"deltica/pkg/constants"
	apperrors "deltica/pkg/errors"
)

// CalculateDue считает срок действия поверки: дата поверки плюс интервал
// в месяцах минус один день. Сложение месяцев - календарное с прижимом
// к концу месяца: 31 января + 1 месяц = 28/29 февраля, а не 2/3 марта.
func CalculateDue(verificationDate time.Time, intervalMonths int) (time.Time, error) {
	if intervalMonths <= 0 {
		return time.Time{}, apperrors.ErrInvalidInterval
	}
	return addMonthsClamped(verificationDate, intervalMonths).AddDate(0, 0, -1), nil
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months
	year += (m - 1) / 12
	month = time.Month((m-1)%12 + 1)
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CalculateStatus выводит отображаемый статус из состояния и срока поверки.
// Вне рабочего состояния статус повторяет состояние независимо от срока;
// архивная запись показывается как годная. Для state_work сравнение идёт
// по календарным дням: просрочка - строго после срока, предупреждение -
// за constants.ExpiringWindowDays дней включительно.
func CalculateStatus(today, due time.Time, state string) string {
	switch state {
	case constants.StateStorage:
		return constants.StatusStorage
	case constants.StateVerification:
		return constants.StatusVerification
	case constants.StateRepair:
		return constants.StatusRepair
	case constants.StateArchived:
		return constants.StatusFit
	}

	todayDay := truncateToDay(today)
	dueDay := truncateToDay(due)

	if todayDay.After(dueDay) {
		return constants.StatusExpired
	}
	if int(dueDay.Sub(todayDay).Hours()/24) <= constants.ExpiringWindowDays {
		return constants.StatusExpiring
	}
	return constants.StatusFit
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
