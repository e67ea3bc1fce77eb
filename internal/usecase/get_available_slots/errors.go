package get_available_slots

import "errors"

var (
	// ErrWorkingDayNotFound на указанную дату нет рабочего дня
	ErrWorkingDayNotFound = errors.New("get_available_slots: working day not found")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("get_available_slots: invalid input")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("get_available_slots: internal error")
)
