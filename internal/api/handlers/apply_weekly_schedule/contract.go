package apply_weekly_schedule

import (
	"context"

	applyWeeklySchedule "github.com/v1adych/SWB-OrderService/internal/usecase/apply_weekly_schedule"
)

type ApplyWeeklyScheduleUseCase interface {
	Execute(ctx context.Context, req *applyWeeklySchedule.Request) (*applyWeeklySchedule.Response, error)
}

// OperatorChecker проверяет, является ли пользователь оператором
type OperatorChecker interface {
	IsOperator(ctx context.Context, userID int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
