package update_order

import (
	"context"

	updateOrder "github.com/v1adych/SWB-OrderService/internal/usecase/update_order"
)

type UpdateOrderUseCase interface {
	Execute(ctx context.Context, req *updateOrder.Request) (*updateOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
