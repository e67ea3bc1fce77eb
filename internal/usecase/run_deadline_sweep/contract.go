package run_deadline_sweep

import (
	"context"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	ListDeadlineCandidates(ctx context.Context, date time.Time) ([]*domain.DeadlineCandidate, error)
	ConfirmIfPending(ctx context.Context, id int64) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
