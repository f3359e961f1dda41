package advance_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStage       = "неизвестная стадия бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInactive           = "бронирование отменено или уже завершено"
	msgOutOfOrder         = "стадии отмечаются строго по порядку"
	msgConflict           = "бронирование было изменено другим запросом, обновите данные и повторите"
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

// Handle POST /api/v1/bookings/{bookingId}/advance
// Body: {"stage": "picked_up_from_client"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/advance - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/advance - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.AdvanceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Advance(r.Context(), bookingID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/advance - Invalid stage: booking_id=%s, stage=%q", bookingID, req.Stage)
			handlers.RespondBadRequest(w, msgInvalidStage)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/advance - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/advance - Access denied: booking_id=%s, account_id=%d, role=%s, stage=%s",
				bookingID, actor.AccountID, actor.Role, req.Stage)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/advance - Booking inactive: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgInactive)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/advance - Out of order: booking_id=%s, stage=%s", bookingID, req.Stage)
			handlers.RespondUnprocessable(w, msgOutOfOrder)

		case errors.Is(err, bookings.ErrConflict):
			h.logger.Warn("POST /bookings/{id}/advance - Concurrent modification: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /bookings/{id}/advance - Failed to advance booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/advance - Booking advanced: booking_id=%s, stage=%s, version=%d",
		bookingID, booking.Stage, booking.Version)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
