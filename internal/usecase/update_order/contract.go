package update_order

import (
	"context"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ReplaceIngredients(ctx context.Context, orderID int64, ingredients []domain.IngredientSnapshot) error
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
