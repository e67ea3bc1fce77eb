package update_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
	updateOrder "github.com/v1adych/SWB-OrderService/internal/usecase/update_order"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOrderID     = "некорректный ID заказа"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "заказ не найден"
	msgForbidden          = "доступ запрещен"
	msgNotModifiable      = "заказ уже нельзя изменить"
	msgInvalidIngredients = "некорректный набор ингредиентов"
)

type Handler struct {
	useCase UpdateOrderUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := strconv.ParseInt(vars["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /orders/{id} - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /orders/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(orderID, userID))
	if err != nil {
		switch {
		case errors.Is(err, updateOrder.ErrOrderNotFound):
			h.logger.Warn("PUT /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateOrder.ErrAccessDenied):
			h.logger.Warn("PUT /orders/{id} - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateOrder.ErrOrderNotModifiable):
			h.logger.Warn("PUT /orders/{id} - Order not modifiable: order_id=%d", orderID)
			handlers.RespondConflict(w, msgNotModifiable)

		case errors.Is(err, updateOrder.ErrValidation), errors.Is(err, updateOrder.ErrInvalidInput):
			h.logger.Warn("PUT /orders/{id} - Invalid ingredients: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidIngredients)

		default:
			h.logger.Error("PUT /orders/{id} - Failed to update order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /orders/{id} - Order updated successfully: order_id=%d, user_id=%d", orderID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
