package create_order

import "errors"

var (
	// ErrTimeSlotNotFound возвращается, когда слот не найден
	ErrTimeSlotNotFound = errors.New("create_order: time slot not found")

	// ErrWorkingDayNotFound возвращается, когда рабочий день слота не найден
	ErrWorkingDayNotFound = errors.New("create_order: working day not found")

	// ErrSlotFull возвращается, когда в слоте не осталось свободных мест
	ErrSlotFull = errors.New("create_order: slot is full")

	// ErrValidation возвращается при некорректном наборе ингредиентов:
	// неизвестный/недоступный ингредиент, дубликаты, не ровно один хлеб
	ErrValidation = errors.New("create_order: ingredient selection is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
