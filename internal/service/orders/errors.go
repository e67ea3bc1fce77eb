package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order not found")

	// ErrWorkingDayNotFound возвращается, когда рабочий день не найден
	ErrWorkingDayNotFound = errors.New("working day not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStateTransition возвращается при недопустимом переходе статуса
	ErrInvalidStateTransition = errors.New("invalid status transition")

	// ErrOrderNotModifiable возвращается, когда заказ уже нельзя изменить или удалить
	ErrOrderNotModifiable = errors.New("order can no longer be modified")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
