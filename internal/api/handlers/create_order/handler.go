package create_order

import (
	"errors"
	"net/http"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
	createOrder "github.com/v1adych/SWB-OrderService/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotFound       = "временной слот не найден"
	msgWorkingDayNotFound = "рабочий день не найден"
	msgSlotFull           = "в выбранном слоте не осталось свободных мест"
	msgInvalidIngredients = "некорректный набор ингредиентов"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrSlotFull):
			h.logger.Warn("POST /orders - Slot full: user_id=%d, slot_id=%d", userID, req.TimeSlotID)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createOrder.ErrTimeSlotNotFound):
			h.logger.Warn("POST /orders - Time slot not found: slot_id=%d", req.TimeSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createOrder.ErrWorkingDayNotFound):
			h.logger.Warn("POST /orders - Working day not found: slot_id=%d", req.TimeSlotID)
			handlers.RespondNotFound(w, msgWorkingDayNotFound)

		case errors.Is(err, createOrder.ErrValidation), errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders - Invalid ingredients: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidIngredients)

		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, slot_id=%d, error=%v",
				userID, req.TimeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created successfully: order_id=%d, user_id=%d, daily_number=%d",
		result.ID, userID, result.DailyNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
