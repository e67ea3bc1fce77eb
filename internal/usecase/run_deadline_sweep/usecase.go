package run_deadline_sweep

import (
	"context"
	"fmt"
	"time"
)

// Response итог одного прохода sweep
type Response struct {
	Scanned   int // Количество pending заказов на сегодня
	Confirmed int // Переведено в confirmed этим проходом
	Skipped   int // Дедлайн еще не наступил или заказ уже подтвержден параллельно
	Failed    int // Ошибки отдельных заказов (залогированы, проход продолжен)
}

// UseCase периодический проход автоподтверждения заказов
// Каждый pending заказ сегодняшнего дня, чей дедлайн изменения прошел,
// переводится в confirmed. Проход идемпотентен: заказы подтверждаются
// атомарным UPDATE с условием status = pending, поэтому повторные запуски
// и конкуренция с пользовательскими изменениями безопасны
type UseCase struct {
	orderRepo    OrderRepository
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет один проход sweep
// Ошибка одного заказа не прерывает обработку остальных
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.location)

	candidates, err := uc.orderRepo.ListDeadlineCandidates(ctx, now)
	if err != nil {
		uc.logger.Error("DeadlineSweep: failed to list candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to list candidates: %v", ErrInternal, err)
	}

	resp := &Response{Scanned: len(candidates)}

	for _, candidate := range candidates {
		deadline, err := candidate.DeadlineAt(uc.location)
		if err != nil {
			uc.logger.Error("DeadlineSweep: failed to compute deadline for order=%d: %v", candidate.OrderID, err)
			resp.Failed++
			continue
		}

		if now.Before(deadline) {
			resp.Skipped++
			continue
		}

		confirmed, err := uc.orderRepo.ConfirmIfPending(ctx, candidate.OrderID)
		if err != nil {
			uc.logger.Error("DeadlineSweep: failed to confirm order=%d: %v", candidate.OrderID, err)
			resp.Failed++
			continue
		}

		if confirmed {
			uc.logger.Info("DeadlineSweep: order=%d auto-confirmed, deadline was %s",
				candidate.OrderID, deadline.Format(time.RFC3339))
			resp.Confirmed++
		} else {
			// Заказ успел уйти из pending между выборкой и UPDATE
			resp.Skipped++
		}
	}

	if resp.Confirmed > 0 || resp.Failed > 0 {
		uc.logger.Info("DeadlineSweep: scanned=%d confirmed=%d skipped=%d failed=%d",
			resp.Scanned, resp.Confirmed, resp.Skipped, resp.Failed)
	}

	return resp, nil
}
