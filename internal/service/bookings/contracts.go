package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetPending(ctx context.Context, shopID *int64) ([]*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64) ([]*domain.Booking, error)
	GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error)
	UpdateState(ctx context.Context, booking *domain.Booking, expected domain.StateVector) error
}

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// EventPublisher интерфейс публикации событий жизненного цикла
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics интерфейс метрик переходов
type Metrics interface {
	IncBookingTransition(stage string)
	IncBookingConflict()
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
