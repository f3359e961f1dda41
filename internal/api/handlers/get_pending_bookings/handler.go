package get_pending_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings"
)

const (
	msgInvalidShopID  = "некорректный ID прачечной"
	msgShopIDRequired = "для учетной записи прачечной нужно указать shopId"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgShopNotFound   = "прачечная не найдена"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/pending
// Query params: shopId (опционально, обязателен для прачечной)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/pending - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var shopID *int64
	if raw := r.URL.Query().Get("shopId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /bookings/pending - Invalid shop ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidShopID)
			return
		}
		shopID = &id
	}

	result, err := h.service.GetPending(r.Context(), shopID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/pending - Shop ID required: account_id=%d", actor.AccountID)
			handlers.RespondBadRequest(w, msgShopIDRequired)

		case errors.Is(err, bookings.ErrShopNotFound):
			h.logger.Warn("GET /bookings/pending - Shop not found: shop_id=%s", r.URL.Query().Get("shopId"))
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/pending - Access denied: account_id=%d, role=%s", actor.AccountID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/pending - Failed to get pending bookings: account_id=%d, error=%v", actor.AccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/pending - Pending bookings retrieved: account_id=%d, count=%d",
		actor.AccountID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
