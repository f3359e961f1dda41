package bookings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	bookingRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/booking"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) GetPending(ctx context.Context, shopID *int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, shopID)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) GetByClientID(ctx context.Context, clientID int64) ([]*domain.Booking, error) {
	args := m.Called(ctx, clientID)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.Booking)
	return list, args.Error(1)
}

func (m *mockBookingRepo) UpdateState(ctx context.Context, booking *domain.Booking, expected domain.StateVector) error {
	args := m.Called(ctx, booking, expected)
	return args.Error(0)
}

type mockShopRepo struct {
	mock.Mock
}

func (m *mockShopRepo) GetShopByID(ctx context.Context, id int64) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Shop)
	return s, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncBookingTransition(stage string) {
	m.Called(stage)
}

func (m *mockMetrics) IncBookingConflict() {
	m.Called()
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// memoryRepo хранилище в памяти с условной записью, как в Postgres-репозитории
type memoryRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.Booking

	// readBarrier задерживает чтения, пока все участники гонки не прочитают строку
	readBarrier *sync.WaitGroup
}

func newMemoryRepo(bookings ...domain.Booking) *memoryRepo {
	r := &memoryRepo{rows: make(map[uuid.UUID]domain.Booking)}
	for _, b := range bookings {
		r.rows[b.ID] = b
	}
	return r
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.mu.Lock()
	b, ok := r.rows[id]
	r.mu.Unlock()

	if r.readBarrier != nil {
		r.readBarrier.Done()
		r.readBarrier.Wait()
	}

	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *memoryRepo) GetPending(context.Context, *int64) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *memoryRepo) GetByClientID(context.Context, int64) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *memoryRepo) GetByShopWithFilter(context.Context, domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (r *memoryRepo) UpdateState(_ context.Context, booking *domain.Booking, expected domain.StateVector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[booking.ID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if current.State() != expected {
		return bookingRepo.ErrStaleState
	}

	booking.Version = current.Version + 1
	r.rows[booking.ID] = *booking
	return nil
}

func (r *memoryRepo) get(id uuid.UUID) domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id]
}
