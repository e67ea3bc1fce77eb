package apply_weekly_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v1adych/SWB-OrderService/internal/domain"
	workingdayRepo "github.com/v1adych/SWB-OrderService/internal/infra/storage/workingday"
	"github.com/v1adych/SWB-OrderService/pkg/types"
)

// UseCase use case применения недельного шаблона расписания
// Работает только с будущими датами и никогда не редактирует существующие
// рабочие дни: день либо создается, либо удаляется целиком, либо не трогается
type UseCase struct {
	workingDayRepo      WorkingDayRepository
	timeSlotRepo        TimeSlotRepository
	orderRepo           OrderRepository
	txManager           TransactionManager
	timeProvider        TimeProvider
	slotDurationMinutes int
	location            *time.Location
	logger              Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	workingDayRepo WorkingDayRepository,
	timeSlotRepo TimeSlotRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	slotDurationMinutes int,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		workingDayRepo:      workingDayRepo,
		timeSlotRepo:        timeSlotRepo,
		orderRepo:           orderRepo,
		txManager:           txManager,
		timeProvider:        timeProvider,
		slotDurationMinutes: slotDurationMinutes,
		location:            location,
		logger:              logger,
	}
}

// Execute применяет недельный шаблон
// Все операции над датами идут в одной транзакции: либо коммитятся все,
// либо ни одна. Удаление выключенного дня каскадно уносит его слоты и заказы —
// отчет содержит количество удаленных заказов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyWeeklySchedule: location=%q capacity=%d deadline=%dmin",
		req.Location, req.Capacity, req.DeadlineMinutes)

	// 1. Валидация шаблона
	if err := validateRequest(req, uc.slotDurationMinutes); err != nil {
		uc.logger.Warn("ApplyWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.location)
	resp := &Response{Days: make([]DayReport, 0, 7)}

	// 2. Применяем шаблон атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, day := range req.weekdayTemplates() {
			date := nextOccurrence(now, day.Weekday)

			report, err := uc.applyDay(txCtx, req, day.Weekday, day.Template, date)
			if err != nil {
				return err
			}

			resp.Days = append(resp.Days, *report)

			switch report.Action {
			case ActionCreated:
				resp.DaysCreated++
			case ActionDeleted:
				resp.DaysDeleted++
				resp.OrdersDeleted += report.OrdersDeleted
			}
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("ApplyWeeklySchedule: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("ApplyWeeklySchedule: done, created=%d deleted=%d orders_deleted=%d",
		resp.DaysCreated, resp.DaysDeleted, resp.OrdersDeleted)

	return resp, nil
}

// applyDay применяет шаблон одного дня недели к вычисленной будущей дате
func (uc *UseCase) applyDay(ctx context.Context, req *Request, weekday time.Weekday, tmpl DayTemplate, date time.Time) (*DayReport, error) {
	report := &DayReport{
		Weekday: weekday.String(),
		Date:    date,
	}

	exists, err := uc.workingDayRepo.ExistsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check working day existence: %v", ErrInternal, err)
	}

	if !tmpl.Enabled {
		if !exists {
			report.Action = ActionUntouched
			return report, nil
		}
		return uc.deleteDay(ctx, report, date)
	}

	// Существующий день не редактируется шаблоном ни при каких условиях
	if exists {
		report.Action = ActionKept
		return report, nil
	}

	return uc.createDay(ctx, req, tmpl, report, date)
}

// createDay создает рабочий день и сразу генерирует его слоты
func (uc *UseCase) createDay(ctx context.Context, req *Request, tmpl DayTemplate, report *DayReport, date time.Time) (*DayReport, error) {
	openTime, err := types.NewTimeStringFromString(tmpl.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: open time: %v", ErrInvalidInput, err)
	}
	closeTime, err := types.NewTimeStringFromString(tmpl.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: close time: %v", ErrInvalidInput, err)
	}

	day := &domain.WorkingDay{
		Date:            date,
		Location:        req.Location,
		Capacity:        req.Capacity,
		DeadlineMinutes: req.DeadlineMinutes,
		OpenTime:        openTime,
		CloseTime:       closeTime,
		IsActive:        true,
	}

	created, err := uc.workingDayRepo.Create(ctx, day)
	if err != nil {
		// Гонка с параллельным применением шаблона: день появился между
		// проверкой существования и вставкой. Считаем его существующим
		if errors.Is(err, workingdayRepo.ErrWorkingDayExists) {
			report.Action = ActionKept
			return report, nil
		}
		return nil, fmt.Errorf("%w: failed to create working day: %v", ErrInternal, err)
	}

	slots, err := domain.GenerateSlots(created, uc.slotDurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	slotsCreated, err := uc.timeSlotRepo.CreateBatch(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
	}

	uc.logger.Info("ApplyWeeklySchedule: created day %s with %d slots",
		date.Format(domain.DateFormat), slotsCreated)

	report.Action = ActionCreated
	report.SlotsCreated = slotsCreated
	return report, nil
}

// deleteDay удаляет выключенный шаблоном день вместе со слотами и заказами
func (uc *UseCase) deleteDay(ctx context.Context, report *DayReport, date time.Time) (*DayReport, error) {
	day, err := uc.workingDayRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, workingdayRepo.ErrWorkingDayNotFound) {
			report.Action = ActionUntouched
			return report, nil
		}
		return nil, fmt.Errorf("%w: failed to get working day: %v", ErrInternal, err)
	}

	ordersDeleted, err := uc.orderRepo.CountByWorkingDay(ctx, day.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count orders: %v", ErrInternal, err)
	}

	if err := uc.workingDayRepo.DeleteByDate(ctx, date); err != nil {
		return nil, fmt.Errorf("%w: failed to delete working day: %v", ErrInternal, err)
	}

	if ordersDeleted > 0 {
		uc.logger.Warn("ApplyWeeklySchedule: deleted day %s with %d existing orders",
			date.Format(domain.DateFormat), ordersDeleted)
	} else {
		uc.logger.Info("ApplyWeeklySchedule: deleted day %s", date.Format(domain.DateFormat))
	}

	report.Action = ActionDeleted
	report.OrdersDeleted = ordersDeleted
	return report, nil
}
