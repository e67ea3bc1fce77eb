package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	timeslotRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/timeslot"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
	ingredientClient "github.com/v1adych/SWB-OrderService/internal/integrations/ingredientservice"
)

// UseCase use case приема заказа в слот
// Самая критичная часть сервиса: проверка вместимости, выдача daily_number
// и вставка заказа выполняются атомарно относительно конкурентных заявок
type UseCase struct {
	orderRepo        OrderRepository
	timeSlotRepo     TimeSlotRepository
	workingDayRepo   WorkingDayRepository
	ingredientClient IngredientServiceClient
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	timeSlotRepo TimeSlotRepository,
	workingDayRepo WorkingDayRepository,
	ingredientClient IngredientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:        orderRepo,
		timeSlotRepo:     timeSlotRepo,
		workingDayRepo:   workingDayRepo,
		ingredientClient: ingredientClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания заказа
// Проверка вместимости и назначение daily_number идут в сериализуемой
// транзакции под блокировкой строки рабочего дня: две одновременные заявки
// на последнее место не могут пройти обе, и номера не выдаются дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrder: user=%d, slot=%d, ingredients=%d",
		req.UserID, req.TimeSlotID, len(req.IngredientIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ингредиенты из каталога
	ingredients, err := uc.ingredientClient.GetIngredients(ctx, req.IngredientIDs)
	if err != nil {
		if errors.Is(err, ingredientClient.ErrIngredientNotFound) {
			uc.logger.Warn("CreateOrder: unknown ingredient in selection, user=%d", req.UserID)
			return nil, fmt.Errorf("%w: unknown ingredient in selection", ErrValidation)
		}
		uc.logger.Error("CreateOrder: failed to fetch ingredients: %v", err)
		return nil, fmt.Errorf("%w: failed to fetch ingredients: %v", ErrInternal, err)
	}

	// 3. Проверяем бизнес-правила набора (ровно один хлеб, без дубликатов, все доступны)
	if err := validateSelection(ingredients); err != nil {
		uc.logger.Warn("CreateOrder: selection validation failed: %v", err)
		return nil, err
	}

	snapshots := toSnapshots(ingredients)

	var (
		result *domain.Order
		slot   *domain.TimeSlot
		day    *domain.WorkingDay
	)

	// 4. Выполняем операции с БД в сериализуемой транзакции
	// Ошибки БД оборачиваются через %w: pq-код в цепочке нужен менеджеру
	// транзакций, чтобы повторить проигравшую конкурентную заявку
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем слот
		slot, err = uc.timeSlotRepo.GetByID(txCtx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
				return ErrTimeSlotNotFound
			}
			return fmt.Errorf("%w: failed to get time slot: %w", ErrInternal, err)
		}

		// 4.2. Блокируем рабочий день (FOR UPDATE): прием заказов дня идет строго
		// последовательно, это защищает и вместимость, и уникальность daily_number
		day, err = uc.workingDayRepo.GetByID(txCtx, slot.WorkingDayID)
		if err != nil {
			if errors.Is(err, workingdayRepo.ErrWorkingDayNotFound) {
				return ErrWorkingDayNotFound
			}
			return fmt.Errorf("%w: failed to get working day: %w", ErrInternal, err)
		}

		// 4.3. Проверяем вместимость слота (rejected заказы место не занимают)
		occupied, err := uc.orderRepo.CountActiveBySlot(txCtx, slot.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to count slot orders: %w", ErrInternal, err)
		}

		if occupied >= day.Capacity {
			uc.logger.Warn("CreateOrder: slot=%d is full, %d/%d spots taken",
				slot.ID, occupied, day.Capacity)
			return ErrSlotFull
		}

		// 4.4. Выдаем следующий номер дня: max+1, номера не переиспользуются
		maxNumber, err := uc.orderRepo.MaxDailyNumber(txCtx, day.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to get max daily number: %w", ErrInternal, err)
		}

		order := &domain.Order{
			UserID:       req.UserID,
			TimeSlotID:   slot.ID,
			WorkingDayID: day.ID,
			DailyNumber:  maxNumber + 1,
			Status:       domain.StatusPending,
			Ingredients:  snapshots,
		}

		// 4.5. Сохраняем заказ со снапшотами ингредиентов
		created, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			return fmt.Errorf("%w: failed to create order: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrSlotFull) &&
			!errors.Is(err, ErrTimeSlotNotFound) &&
			!errors.Is(err, ErrWorkingDayNotFound) &&
			!errors.Is(err, ErrInternal) {
			// Ошибка транзакции вне наших sentinel-ошибок
			uc.logger.Error("CreateOrder: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateOrder: successfully created order id=%d, daily_number=%d, slot=%d",
		result.ID, result.DailyNumber, slot.ID)

	return buildResponse(result, slot, day), nil
}
