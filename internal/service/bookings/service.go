package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	bookingRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	shopRepo     ShopRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		shopRepo:     shopRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Видят клиент-владелец, прачечная, закрепленные курьеры и администратор.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for account=%d", id, actor.AccountID)

	booking, err := s.loadBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relate(ctx, "GetByID", actor, booking)
	if err != nil {
		return nil, err
	}
	if !canView(rel) {
		s.logger.Warn("GetByID: access denied for account=%d role=%s to booking id=%s", actor.AccountID, actor.Role, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// Advance отмечает следующую стадию исполнения заказа.
// Запись обусловлена прочитанным состоянием; гонка с другой записью дает ErrConflict.
func (s *Service) Advance(ctx context.Context, id uuid.UUID, req *models.AdvanceBookingRequest, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Advance: booking id=%s to stage=%s by account=%d role=%s", id, req.Stage, actor.AccountID, actor.Role)

	target, err := domain.ParseStage(req.Stage)
	if err != nil {
		s.logger.Warn("Advance: invalid stage=%q for booking id=%s", req.Stage, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.loadBooking(ctx, "Advance", id)
	if err != nil {
		return nil, err
	}

	if err := booking.CheckAdvance(target); err != nil {
		s.logger.Warn("Advance: booking id=%s rejected stage=%s at stage=%s canceled=%t: %v",
			id, target, booking.Stage, booking.IsCanceled, err)
		return nil, translateLifecycleError(err)
	}

	rel, err := s.relate(ctx, "Advance", actor, booking)
	if err != nil {
		return nil, err
	}
	if !canPerform(rel, target, booking) {
		s.logger.Warn("Advance: account=%d role=%s may not mark stage=%s on booking id=%s",
			actor.AccountID, actor.Role, target, id)
		return nil, ErrAccessDenied
	}

	expected := booking.State()
	now := s.timeProvider.Now()
	if err := booking.Advance(target, actor, now); err != nil {
		return nil, translateLifecycleError(err)
	}

	if err := s.persist(ctx, "Advance", booking, expected); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncBookingTransition(target.String())
	}
	s.publish(ctx, domain.NewBookingEvent(booking, domain.EventStageAdvanced, actor, now))

	s.logger.Info("Advance: booking id=%s is now at stage=%s version=%d", id, booking.Stage, booking.Version)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование на любой активной стадии.
// Доступно клиенту-владельцу, прачечной и администратору. Повторная отмена возвращает бронирование без изменений.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by account=%d role=%s", id, actor.AccountID, actor.Role)

	booking, err := s.loadBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relate(ctx, "Cancel", actor, booking)
	if err != nil {
		return nil, err
	}
	if !canCancel(rel) {
		s.logger.Warn("Cancel: access denied for account=%d role=%s to booking id=%s", actor.AccountID, actor.Role, id)
		return nil, ErrAccessDenied
	}

	if booking.IsCanceled {
		s.logger.Info("Cancel: booking id=%s is already canceled", id)
		return models.FromDomainBooking(booking), nil
	}

	expected := booking.State()
	now := s.timeProvider.Now()
	if err := booking.Cancel(now); err != nil {
		s.logger.Warn("Cancel: booking id=%s cannot be canceled: %v", id, err)
		return nil, translateLifecycleError(err)
	}

	if err := s.persist(ctx, "Cancel", booking, expected); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.NewBookingEvent(booking, domain.EventCanceled, actor, now))

	s.logger.Info("Cancel: booking id=%s canceled at stage=%s", id, booking.Stage)
	return models.FromDomainBooking(booking), nil
}

// GetPending получает бронирования, ожидающие принятия прачечной, в порядке поступления.
// Прачечная видит только свои; курьеры и администратор - любые.
func (s *Service) GetPending(ctx context.Context, shopID *int64, actor domain.Actor) (*models.BookingListResponse, error) {
	if shopID != nil {
		s.logger.Info("GetPending: account=%d role=%s shop=%d", actor.AccountID, actor.Role, *shopID)
	} else {
		s.logger.Info("GetPending: account=%d role=%s all shops", actor.AccountID, actor.Role)
	}

	switch actor.Role {
	case domain.RoleAdmin, domain.RoleRider:
		if shopID != nil {
			if _, err := s.loadShop(ctx, "GetPending", *shopID); err != nil {
				return nil, err
			}
		}
	case domain.RoleShop:
		if shopID == nil {
			s.logger.Warn("GetPending: shop account=%d did not specify shopId", actor.AccountID)
			return nil, fmt.Errorf("%w: shopId is required for shop accounts", ErrInvalidInput)
		}
		if err := s.checkShopOwner(ctx, "GetPending", *shopID, actor); err != nil {
			return nil, err
		}
	default:
		s.logger.Warn("GetPending: access denied for account=%d role=%s", actor.AccountID, actor.Role)
		return nil, ErrAccessDenied
	}

	pending, err := s.bookingRepo.GetPending(ctx, shopID)
	if err != nil {
		s.logger.Error("GetPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPending: fetched %d pending bookings", len(pending))
	return models.FromDomainBookingList(pending), nil
}

// RecordWeight фиксирует вес белья и пересчитывает итоговую стоимость
// totalPrice = round2(weight * servicePrice). Без цены услуги totalPrice остается пустым.
func (s *Service) RecordWeight(ctx context.Context, id uuid.UUID, req *models.RecordWeightRequest, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("RecordWeight: booking id=%s weight=%s by account=%d", id, req.Weight, actor.AccountID)

	if !req.Weight.IsPositive() || !req.Weight.Equal(req.Weight.Round(domain.MoneyScale)) || req.Weight.GreaterThan(domain.MaxWeight) {
		s.logger.Warn("RecordWeight: invalid weight=%s for booking id=%s", req.Weight, id)
		return nil, fmt.Errorf("%w: weight must be positive, at most %s, with at most %d decimals",
			ErrInvalidInput, domain.MaxWeight, domain.MoneyScale)
	}

	booking, err := s.loadBooking(ctx, "RecordWeight", id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relate(ctx, "RecordWeight", actor, booking)
	if err != nil {
		return nil, err
	}
	if !canRecordWeight(rel) {
		s.logger.Warn("RecordWeight: access denied for account=%d role=%s to booking id=%s", actor.AccountID, actor.Role, id)
		return nil, ErrAccessDenied
	}

	if !booking.IsActive() || booking.Stage < domain.StagePickedUpFromClient {
		s.logger.Warn("RecordWeight: booking id=%s at stage=%s canceled=%t cannot take a weight",
			id, booking.Stage, booking.IsCanceled)
		return nil, ErrInvalidState
	}

	expected := booking.State()
	booking.Weight = decimal.NewNullDecimal(req.Weight)
	booking.TotalPrice = decimal.NullDecimal{}
	if booking.ServicePrice.Valid {
		total := req.Weight.Mul(booking.ServicePrice.Decimal).Round(domain.MoneyScale)
		if total.GreaterThan(domain.MaxMoneyAmount) {
			s.logger.Warn("RecordWeight: total=%s for booking id=%s exceeds the maximum", total, id)
			return nil, fmt.Errorf("%w: total price %s exceeds %s", ErrInvalidInput, total, domain.MaxMoneyAmount)
		}
		booking.TotalPrice = decimal.NewNullDecimal(total)
	}
	booking.UpdatedAt = s.timeProvider.Now()

	if err := s.persist(ctx, "RecordWeight", booking, expected); err != nil {
		return nil, err
	}

	s.logger.Info("RecordWeight: booking id=%s weight=%s total=%v", id, req.Weight, models.Money(booking.TotalPrice))
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента, сначала новые
func (s *Service) GetClientBookings(ctx context.Context, clientID int64, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d by account=%d", clientID, actor.AccountID)

	if !actor.IsAdmin() && !(actor.Role == domain.RoleClient && actor.AccountID == clientID) {
		s.logger.Warn("GetClientBookings: access denied for account=%d role=%s to client=%d", actor.AccountID, actor.Role, clientID)
		return nil, ErrAccessDenied
	}

	list, err := s.bookingRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(list), clientID)
	return models.FromDomainBookingList(list), nil
}

// GetShopBookings получает бронирования прачечной с фильтрацией по периоду и классу
// жизненного цикла. Доступно владельцу прачечной и администратору.
func (s *Service) GetShopBookings(ctx context.Context, req *models.GetShopBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetShopBookings: fetching bookings for shop=%d, account=%d", req.ShopID, actor.AccountID)
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", req.StartDate.Format(domain.DateFormat))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", req.EndDate.Format(domain.DateFormat))
	}
	if req.Class != nil {
		logMsg += fmt.Sprintf(", class=%s", *req.Class)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetShopBookings: invalid filter for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if actor.IsAdmin() {
		if _, err := s.loadShop(ctx, "GetShopBookings", req.ShopID); err != nil {
			return nil, err
		}
	} else if err := s.checkShopOwner(ctx, "GetShopBookings", req.ShopID, actor); err != nil {
		return nil, err
	}

	list, err := s.bookingRepo.GetByShopWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetShopBookings: repository error for shop=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: GetShopBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopBookings: fetched %d bookings for shop=%d", len(list), req.ShopID)
	return models.FromDomainBookingList(list), nil
}

// Вспомогательные методы

func (s *Service) loadBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) loadShop(ctx context.Context, op string, shopID int64) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetShopByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrShopNotFound) {
			s.logger.Warn("%s: shop id=%d not found", op, shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("%s: failed to get shop id=%d: %v", op, shopID, err)
		return nil, fmt.Errorf("%w: %s - failed to get shop: %v", ErrInternal, op, err)
	}
	return shop, nil
}

// checkShopOwner проверяет, что вызывающий - учетная запись-владелец прачечной
func (s *Service) checkShopOwner(ctx context.Context, op string, shopID int64, actor domain.Actor) error {
	if actor.Role != domain.RoleShop {
		s.logger.Warn("%s: account=%d role=%s is not a shop account", op, actor.AccountID, actor.Role)
		return ErrAccessDenied
	}

	shop, err := s.loadShop(ctx, op, shopID)
	if err != nil {
		return err
	}

	if shop.OwnerID != actor.AccountID {
		s.logger.Warn("%s: account=%d is not the owner of shop=%d", op, actor.AccountID, shopID)
		return ErrAccessDenied
	}
	return nil
}

// relate определяет отношение вызывающего к бронированию.
// Прачечная запрашивается только для учетных записей прачечных.
func (s *Service) relate(ctx context.Context, op string, actor domain.Actor, booking *domain.Booking) (relation, error) {
	var shop *domain.Shop
	if actor.Role == domain.RoleShop {
		found, err := s.shopRepo.GetShopByID(ctx, booking.ShopID)
		switch {
		case err == nil:
			shop = found
		case errors.Is(err, catalogRepo.ErrShopNotFound):
			s.logger.Warn("%s: shop id=%d of booking id=%s no longer exists", op, booking.ShopID, booking.ID)
		default:
			s.logger.Error("%s: failed to get shop id=%d: %v", op, booking.ShopID, err)
			return relation{}, fmt.Errorf("%w: %s - failed to get shop: %v", ErrInternal, op, err)
		}
	}
	return relate(actor, booking, shop), nil
}

// persist выполняет условную запись и переводит ошибки репозитория
func (s *Service) persist(ctx context.Context, op string, booking *domain.Booking, expected domain.StateVector) error {
	err := s.bookingRepo.UpdateState(ctx, booking, expected)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, bookingRepo.ErrStaleState):
		s.logger.Warn("%s: booking id=%s changed since read (stage=%s version=%d)", op, booking.ID, expected.Stage, expected.Version)
		if s.metrics != nil {
			s.metrics.IncBookingConflict()
		}
		return ErrConflict
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%s disappeared before write", op, booking.ID)
		return ErrBookingNotFound
	default:
		s.logger.Error("%s: repository error for booking id=%s: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// publish отправляет событие; ошибка публикации не отменяет уже сохраненный переход
func (s *Service) publish(ctx context.Context, event domain.BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s event for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}

func translateLifecycleError(err error) error {
	switch {
	case errors.Is(err, domain.ErrBookingCanceled), errors.Is(err, domain.ErrBookingCompleted):
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	case errors.Is(err, domain.ErrStageOutOfOrder):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
