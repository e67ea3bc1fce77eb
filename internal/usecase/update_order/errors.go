package update_order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("update_order: order not found")

	// ErrAccessDenied возвращается, когда заказ принадлежит другому пользователю
	ErrAccessDenied = errors.New("update_order: order belongs to another user")

	// ErrOrderNotModifiable возвращается, когда заказ уже не pending
	// или дедлайн изменения прошел
	ErrOrderNotModifiable = errors.New("update_order: order is not modifiable")

	// ErrValidation возвращается при некорректном наборе ингредиентов
	ErrValidation = errors.New("update_order: ingredient selection is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_order: internal error")
)
