package apply_weekly_schedule

import (
	"context"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
)

// WorkingDayRepository интерфейс репозитория рабочих дней
type WorkingDayRepository interface {
	Create(ctx context.Context, day *domain.WorkingDay) (*domain.WorkingDay, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.WorkingDay, error)
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)
	DeleteByDate(ctx context.Context, date time.Time) error
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	CreateBatch(ctx context.Context, slots []domain.TimeSlot) (int, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	CountByWorkingDay(ctx context.Context, workingDayID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
