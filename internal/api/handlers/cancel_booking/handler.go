package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgCannotCancel     = "завершенное бронирование нельзя отменить"
	msgConflict         = "бронирование было изменено другим запросом, обновите данные и повторите"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
// Handle DELETE /api/v1/bookings/{bookingId} (мягкое удаление - та же отмена)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " /bookings/{id}"

	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found: booking_id=%s", route, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: booking_id=%s, account_id=%d", route, bookingID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidState):
			h.logger.Warn("%s - Booking already completed: booking_id=%s", route, bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrConflict):
			h.logger.Warn("%s - Concurrent modification: booking_id=%s", route, bookingID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("%s - Failed to cancel booking: booking_id=%s, error=%v", route, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking cancelled successfully: booking_id=%s, account_id=%d", route, bookingID, actor.AccountID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
