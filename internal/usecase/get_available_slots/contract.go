package get_available_slots

import (
	"context"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
)

// WorkingDayRepository интерфейс репозитория рабочих дней
type WorkingDayRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.WorkingDay, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	ListByWorkingDay(ctx context.Context, workingDayID int64) ([]*domain.TimeSlot, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	CountActiveBySlots(ctx context.Context, slotIDs []int64) (map[int64]int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
