package update_order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	orderRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/order"
	ingredientClient "github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
)

// UseCase use case изменения состава pending заказа его владельцем
type UseCase struct {
	orderRepo        OrderRepository
	timeSlotRepo     TimeSlotRepository
	workingDayRepo   WorkingDayRepository
	ingredientClient IngredientServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	timeSlotRepo TimeSlotRepository,
	workingDayRepo WorkingDayRepository,
	ingredientClient IngredientServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:        orderRepo,
		timeSlotRepo:     timeSlotRepo,
		workingDayRepo:   workingDayRepo,
		ingredientClient: ingredientClient,
		txManager:        txManager,
		timeProvider:     timeProvider,
		location:         location,
		logger:           logger,
	}
}

// Execute выполняет use case изменения заказа
// Право на изменение проверяется в той же транзакции, что и сама замена
// ингредиентов: запрос, пришедший после дедлайна, отклоняется независимо
// от того, успел ли отработать sweep автоподтверждения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOrder: order=%d, user=%d, ingredients=%d",
		req.OrderID, req.UserID, len(req.IngredientIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем и валидируем новый набор ингредиентов
	ingredients, err := uc.ingredientClient.GetIngredients(ctx, req.IngredientIDs)
	if err != nil {
		if errors.Is(err, ingredientClient.ErrIngredientNotFound) {
			uc.logger.Warn("UpdateOrder: unknown ingredient in selection, order=%d", req.OrderID)
			return nil, fmt.Errorf("%w: unknown ingredient in selection", ErrValidation)
		}
		uc.logger.Error("UpdateOrder: failed to fetch ingredients: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch ingredients: %v", ErrInternal, err)
	}

	if err := validateSelection(ingredients); err != nil {
		uc.logger.Warn("UpdateOrder: selection validation failed: %v", err)
		return nil, err
	}

	snapshots := toSnapshots(ingredients)
	now := uc.timeProvider.Now().In(uc.location)

	var result *domain.Order

	// 3. Проверка права на изменение и замена состава — одна транзакция
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем заказ с блокировкой строки
		order, err := uc.orderRepo.GetByID(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// 3.2. Изменять заказ может только владелец
		if order.UserID != req.UserID {
			return ErrAccessDenied
		}

		// 3.3. Заказ должен быть pending и дедлайн не должен быть пройден
		if !order.IsPending() {
			return fmt.Errorf("%w: status is %s", ErrOrderNotModifiable, order.Status)
		}

		deadline, err := uc.orderDeadline(txCtx, order)
		if err != nil {
			return err
		}
		if !now.Before(deadline) {
			return fmt.Errorf("%w: modification deadline %s has passed", ErrOrderNotModifiable, deadline.Format(time.RFC3339))
		}

		// 3.4. Заменяем снапшоты целиком
		if err := uc.orderRepo.ReplaceIngredients(txCtx, order.ID, snapshots); err != nil {
			return fmt.Errorf("%w: failed to replace ingredients: %v", ErrInternal, err)
		}

		order.Ingredients = snapshots
		result = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateOrder: successfully updated order id=%d", result.ID)

	return buildResponse(result), nil
}

// orderDeadline вычисляет дедлайн изменения заказа: начало слота минус deadline_minutes дня
func (uc *UseCase) orderDeadline(ctx context.Context, order *domain.Order) (time.Time, error) {
	slot, err := uc.timeSlotRepo.GetByID(ctx, order.TimeSlotID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
	}

	day, err := uc.workingDayRepo.GetByID(ctx, order.WorkingDayID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to get working day: %v", ErrInternal, err)
	}

	deadline, err := day.Deadline(slot, uc.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to compute deadline: %v", ErrInternal, err)
	}

	return deadline, nil
}
