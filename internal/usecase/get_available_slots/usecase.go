package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
)

// UseCase use case получения слотов рабочего дня с остатком вместимости
type UseCase struct {
	workingDayRepo WorkingDayRepository
	timeSlotRepo   TimeSlotRepository
	orderRepo      OrderRepository
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workingDayRepo WorkingDayRepository,
	timeSlotRepo TimeSlotRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		workingDayRepo: workingDayRepo,
		timeSlotRepo:   timeSlotRepo,
		orderRepo:      orderRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute возвращает слоты дня с количеством свободных мест в каждом
// Остаток считается по активным заказам: отклоненные заказы место не занимают
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var (
		day    *domain.WorkingDay
		slots  []*domain.TimeSlot
		counts map[int64]int
	)

	// Все чтения идут в одной read-only транзакции: слоты и счетчики
	// относятся к единому снимку дня
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 1. Получаем рабочий день
		var err error
		day, err = uc.workingDayRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			if errors.Is(err, workingdayRepo.ErrWorkingDayNotFound) {
				return fmt.Errorf("%w: date=%s", ErrWorkingDayNotFound, req.Date.Format(domain.DateFormat))
			}
			uc.logger.Error("GetAvailableSlots: failed to get working day: %v", err)
			return fmt.Errorf("%w: failed to get working day: %v", ErrInternal, err)
		}

		// 2. Получаем слоты дня
		slots, err = uc.timeSlotRepo.ListByWorkingDay(txCtx, day.ID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		// 3. Считаем активные заказы по каждому слоту одним запросом
		slotIDs := make([]int64, 0, len(slots))
		for _, slot := range slots {
			slotIDs = append(slotIDs, slot.ID)
		}

		counts = map[int64]int{}
		if len(slotIDs) > 0 {
			counts, err = uc.orderRepo.CountActiveBySlots(txCtx, slotIDs)
			if err != nil {
				uc.logger.Error("GetAvailableSlots: failed to count orders: %v", err)
				return fmt.Errorf("%w: failed to count orders: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Date:     day.Date,
		Location: day.Location,
		Slots:    make([]SlotInfo, 0, len(slots)),
	}

	for _, slot := range slots {
		available := day.Capacity - counts[slot.ID]
		if available < 0 {
			available = 0
		}

		resp.Slots = append(resp.Slots, SlotInfo{
			TimeSlotID:     slot.ID,
			StartTime:      slot.StartTime.String(),
			EndTime:        slot.EndTime.String(),
			AvailableSpots: available,
			TotalSpots:     day.Capacity,
		})
	}

	return resp, nil
}
