package get_day_orders

import (
	"context"

	"github.com/v1adych/SWB-OrderService/internal/service/orders/models"
)

type OrderService interface {
	GetDayOrders(ctx context.Context, req *models.GetDayOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
