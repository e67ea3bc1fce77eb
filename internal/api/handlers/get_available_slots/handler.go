package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/domain"
	getAvailableSlots "github.com/v1adych/SWB-OrderService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "рабочий день не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/days/{date}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /days/{date}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrWorkingDayNotFound):
			h.logger.Warn("GET /days/{date}/available-slots - Working day not found: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /days/{date}/available-slots - Invalid input: date=%s", vars["date"])
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /days/{date}/available-slots - Failed to get slots: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /days/{date}/available-slots - Retrieved %d slots: date=%s",
		len(result.Slots), vars["date"])
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
