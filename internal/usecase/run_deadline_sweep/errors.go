package run_deadline_sweep

import "errors"

var (
	// ErrInternal возвращается, когда sweep не смог получить список кандидатов
	// Ошибки подтверждения отдельных заказов не прерывают проход и не возвращаются
	ErrInternal = errors.New("run_deadline_sweep: internal error")
)
