package run_deadline_sweep

import (
	"net/http"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

// SweepResponse итог одного прохода в HTTP ответе
type SweepResponse struct {
	Scanned   int `json:"scanned"`
	Confirmed int `json:"confirmed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

type Handler struct {
	useCase         RunDeadlineSweepUseCase
	operatorChecker OperatorChecker
	logger          Logger
}

func NewHandler(useCase RunDeadlineSweepUseCase, operatorChecker OperatorChecker, logger Logger) *Handler {
	return &Handler{
		useCase:         useCase,
		operatorChecker: operatorChecker,
		logger:          logger,
	}
}

// Handle POST /api/v1/schedule/deadline-sweep
// Ручной запуск прохода автоподтверждения, в дополнение к фоновому воркеру
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /schedule/deadline-sweep - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	isOperator, err := h.operatorChecker.IsOperator(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /schedule/deadline-sweep - Failed to check operator: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if !isOperator {
		h.logger.Warn("POST /schedule/deadline-sweep - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /schedule/deadline-sweep - Sweep failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /schedule/deadline-sweep - Sweep done: user_id=%d, confirmed=%d", userID, result.Confirmed)
	handlers.RespondJSON(w, http.StatusOK, &SweepResponse{
		Scanned:   result.Scanned,
		Confirmed: result.Confirmed,
		Skipped:   result.Skipped,
		Failed:    result.Failed,
	})
}
