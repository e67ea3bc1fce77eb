package apply_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
	applyWeeklySchedule "github.com/v1adych/SWB-OrderService/internal/usecase/apply_weekly_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTemplate    = "некорректный шаблон расписания"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase         ApplyWeeklyScheduleUseCase
	operatorChecker OperatorChecker
	logger          Logger
}

func NewHandler(useCase ApplyWeeklyScheduleUseCase, operatorChecker OperatorChecker, logger Logger) *Handler {
	return &Handler{
		useCase:         useCase,
		operatorChecker: operatorChecker,
		logger:          logger,
	}
}

// Handle POST /api/v1/schedule/weekly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ApplyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/weekly - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /schedule/weekly - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Применять расписание могут только операторы
	isOperator, err := h.operatorChecker.IsOperator(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /schedule/weekly - Failed to check operator: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if !isOperator {
		h.logger.Warn("POST /schedule/weekly - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, applyWeeklySchedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/weekly - Invalid template: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidTemplate)

		default:
			h.logger.Error("POST /schedule/weekly - Failed to apply template: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/weekly - Template applied: user_id=%d, created=%d, deleted=%d, orders_deleted=%d",
		userID, result.DaysCreated, result.DaysDeleted, result.OrdersDeleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
