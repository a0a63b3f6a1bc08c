// Пакет clock прячет источник текущего времени за интерфейсом,
// чтобы вычисление статусов можно было тестировать без ожидания календаря.
package clock

import "time"

type Clock interface {
	Now() time.Time
	Today() time.Time
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Fixed возвращает часы, замороженные на указанной дате. Используется в тестах.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func (c fixedClock) Today() time.Time {
	return time.Date(c.t.Year(), c.t.Month(), c.t.Day(), 0, 0, 0, 0, time.UTC)
}
