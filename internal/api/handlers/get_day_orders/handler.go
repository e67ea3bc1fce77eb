package get_day_orders

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/v1adych/SWB-OrderService/internal/api/handlers"
	"github.com/v1adych/SWB-OrderService/internal/api/middleware"
	"github.com/v1adych/SWB-OrderService/internal/domain"
	"github.com/v1adych/SWB-OrderService/internal/service/orders"
	"github.com/v1adych/SWB-OrderService/internal/service/orders/models"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "рабочий день не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/days/{date}/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /days/{date}/orders - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /days/{date}/orders - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetDayOrders(r.Context(), &models.GetDayOrdersRequest{
		Date:   date,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrWorkingDayNotFound):
			h.logger.Warn("GET /days/{date}/orders - Working day not found: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied), errors.Is(err, orders.ErrUserNotFound):
			h.logger.Warn("GET /days/{date}/orders - Access denied: date=%s, user_id=%d", vars["date"], userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /days/{date}/orders - Failed to get orders: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /days/{date}/orders - Retrieved %d orders: date=%s, user_id=%d",
		result.Total, vars["date"], userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
