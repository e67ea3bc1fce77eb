package run_deadline_sweep

import (
	"context"

	runDeadlineSweep "github.com/v1adych/SWB-OrderService/internal/usecase/run_deadline_sweep"
)

type RunDeadlineSweepUseCase interface {
	Execute(ctx context.Context) (*runDeadlineSweep.Response, error)
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
