package create_order

import (
	"context"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	CountActiveBySlot(ctx context.Context, timeSlotID int64) (int, error)
	MaxDailyNumber(ctx context.Context, workingDayID int64) (int, error)
}

// TimeSlotRepository интерфейс репозитория слотов
type TimeSlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// WorkingDayRepository интерфейс репозитория рабочих дней
type WorkingDayRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WorkingDay, error)
}

// IngredientServiceClient интерфейс клиента каталога ингредиентов
type IngredientServiceClient interface {
	GetIngredients(ctx context.Context, ids []int64) ([]ingredientservice.Ingredient, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
