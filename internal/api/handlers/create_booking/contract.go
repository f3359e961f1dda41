package create_booking

import (
	"context"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
	createBooking "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
