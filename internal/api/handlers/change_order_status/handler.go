package change_order_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
	"github.com/v1adych/SWB-OrderService/internal/service/orders"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOrderID     = "некорректный ID заказа"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "заказ не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgInvalidStatus      = "некорректный статус заказа"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := strconv.ParseInt(vars["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ChangeStatus(r.Context(), orderID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied), errors.Is(err, orders.ErrUserNotFound):
			h.logger.Warn("PATCH /orders/{id}/status - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrInvalidStateTransition):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid transition: order_id=%d, status=%s",
				orderID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, orders.ErrInvalidStatus):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid status: order_id=%d, status=%s",
				orderID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /orders/{id}/status - Failed to change status: order_id=%d, error=%v",
				orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/status - Status changed successfully: order_id=%d, status=%s",
		orderID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
