package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
