package apply_weekly_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном шаблоне расписания
	ErrInvalidInput = errors.New("apply_weekly_schedule: invalid template")

	// ErrInternal возвращается при внутренних ошибках usecase
	// Вся транзакция применения шаблона при этом откатывается
	ErrInternal = errors.New("apply_weekly_schedule: internal error")
)
