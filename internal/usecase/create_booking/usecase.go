package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	catalogRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	offeringRepo OfferingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	idGenerator  IDGenerator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	offeringRepo OfferingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		offeringRepo: offeringRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		idGenerator:  RandomIDGenerator{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Прачечная, ее название и цена услуги фиксируются в бронировании один раз и больше не пересчитываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: offering=%d, client=%d, actor=%d role=%s",
		req.OfferingID, req.ClientID, req.Actor.AccountID, req.Actor.Role)

	// 1. Бронирования оформляют клиенты; администратор - от имени клиента
	if req.Actor.Role != domain.RoleClient && !req.Actor.IsAdmin() {
		uc.logger.Warn("CreateBooking: account=%d role=%s may not create bookings", req.Actor.AccountID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидация входных данных
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	var result *domain.Booking

	// 3. Разрешение предложения и сохранение в одной serializable транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		details, err := uc.offeringRepo.GetOfferingDetails(txCtx, req.OfferingID)
		if err != nil {
			switch {
			case errors.Is(err, catalogRepo.ErrOfferingNotFound):
				uc.logger.Warn("CreateBooking: offering id=%d not found", req.OfferingID)
				return ErrOfferingNotFound
			case errors.Is(err, catalogRepo.ErrShopNotFound):
				uc.logger.Warn("CreateBooking: shop of offering id=%d not found", req.OfferingID)
				return ErrShopNotFound
			default:
				uc.logger.Error("CreateBooking: failed to resolve offering id=%d: %v", req.OfferingID, err)
				return fmt.Errorf("%w: failed to resolve offering: %v", ErrInternal, err)
			}
		}

		if !details.Offering.IsActive {
			uc.logger.Warn("CreateBooking: offering id=%d is inactive", req.OfferingID)
			return fmt.Errorf("%w: offering %d is not active", ErrInvalidInput, req.OfferingID)
		}

		booking := &domain.Booking{
			ID:              uc.idGenerator.NewID(),
			OfferingID:      details.Offering.ID,
			ClientID:        input.clientID,
			ShopID:          details.Offering.ShopID,
			ShopName:        details.ShopName,
			ServicePrice:    details.Offering.Price,
			PickupAddress:   input.pickupAddress,
			DeliveryAddress: input.deliveryAddress,
			Note:            input.note,
			PaymentMethod:   input.paymentMethod,
			BookingDate:     now,
			Stage:           domain.StageNone,
			IsCanceled:      false,
			Version:         1,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to save booking: %v", err)
			return fmt.Errorf("%w: failed to save booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. Событие публикуется после фиксации транзакции; ошибка публикации только логируется
	if uc.publisher != nil {
		event := domain.NewBookingEvent(result, domain.EventCreated, req.Actor, now)
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("CreateBooking: failed to publish created event for booking id=%s: %v", result.ID, err)
		}
	}

	uc.logger.Info("CreateBooking: created booking id=%s for client=%d at shop=%d", result.ID, result.ClientID, result.ShopID)
	return models.FromDomainBooking(result), nil
}
