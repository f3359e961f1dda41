package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/ptr"
)

// LifecycleClass класс жизненного цикла бронирования
type LifecycleClass string

const (
	ClassActive    LifecycleClass = "active"
	ClassCompleted LifecycleClass = "completed"
	ClassCanceled  LifecycleClass = "canceled"
)

// PaymentMethod способ оплаты заказа
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentEWallet PaymentMethod = "e_wallet"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentEWallet:
		return true
	}
	return false
}

// Booking заказ на стирку с забором и доставкой
type Booking struct {
	ID         uuid.UUID
	OfferingID int64
	ClientID   int64

	// Денормализовано при создании через offering -> shop, больше не пересчитывается
	ShopID       int64
	ShopName     string
	ServicePrice decimal.NullDecimal

	PickupRiderID   *int64
	DeliveryRiderID *int64

	TotalPrice decimal.NullDecimal
	Weight     decimal.NullDecimal

	PickupAddress   string
	DeliveryAddress string
	Note            *string
	PaymentMethod   *PaymentMethod

	BookingDate  time.Time
	DeliveryDate *time.Time
	CompletedAt  *time.Time
	CanceledAt   *time.Time

	Stage      Stage
	IsCanceled bool
	Version    int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LifecycleFlags представление стадий в виде набора флагов
type LifecycleFlags struct {
	IsAcceptedByShop     bool `json:"isAcceptedByShop"`
	PickUpFromClient     bool `json:"pickUpFromClient"`
	HasStartedLaundry    bool `json:"hasStartedLaundry"`
	IsReadyForDelivery   bool `json:"isReadyForDelivery"`
	PickUpFromShop       bool `json:"pickUpFromShop"`
	IsOutForDelivery     bool `json:"isOutForDelivery"`
	ReceivedByClient     bool `json:"receivedByClient"`
	TransactionCompleted bool `json:"transactionCompleted"`
	IsCanceled           bool `json:"isCanceled"`
}

// Flags возвращает флаги жизненного цикла. Истинные флаги всегда образуют префикс списка стадий.
func (b *Booking) Flags() LifecycleFlags {
	return LifecycleFlags{
		IsAcceptedByShop:     b.Stage >= StageAcceptedByShop,
		PickUpFromClient:     b.Stage >= StagePickedUpFromClient,
		HasStartedLaundry:    b.Stage >= StageLaundryStarted,
		IsReadyForDelivery:   b.Stage >= StageReadyForDelivery,
		PickUpFromShop:       b.Stage >= StagePickedUpFromShop,
		IsOutForDelivery:     b.Stage >= StageOutForDelivery,
		ReceivedByClient:     b.Stage >= StageReceivedByClient,
		TransactionCompleted: b.Stage >= StageTransactionCompleted,
		IsCanceled:           b.IsCanceled,
	}
}

// Class возвращает класс жизненного цикла
func (b *Booking) Class() LifecycleClass {
	switch {
	case b.IsCanceled:
		return ClassCanceled
	case b.IsCompleted():
		return ClassCompleted
	default:
		return ClassActive
	}
}

// IsCompleted сделка завершена
func (b *Booking) IsCompleted() bool {
	return b.Stage == FinalStage
}

// IsActive бронирование не отменено и не завершено
func (b *Booking) IsActive() bool {
	return !b.IsCanceled && !b.IsCompleted()
}

// IsPending ожидает принятия прачечной
func (b *Booking) IsPending() bool {
	return b.Stage == StageNone && !b.IsCanceled
}

// NextStage возвращает следующую стадию; false для отмененных и завершенных
func (b *Booking) NextStage() (Stage, bool) {
	if !b.IsActive() {
		return StageNone, false
	}
	return b.Stage + 1, true
}

// CheckAdvance проверяет переход на стадию target без изменения бронирования
func (b *Booking) CheckAdvance(target Stage) error {
	if b.IsCanceled {
		return ErrBookingCanceled
	}
	if b.IsCompleted() {
		return ErrBookingCompleted
	}
	if target != b.Stage+1 {
		return ErrStageOutOfOrder
	}
	return nil
}

// Advance переводит бронирование ровно на одну стадию вперед.
// Исполнитель фиксируется как курьер забора (picked_up_from_client) или доставки (picked_up_from_shop).
func (b *Booking) Advance(target Stage, actor Actor, at time.Time) error {
	if err := b.CheckAdvance(target); err != nil {
		return err
	}

	b.Stage = target

	switch target {
	case StagePickedUpFromClient:
		if actor.Role == RoleRider {
			b.PickupRiderID = ptr.Ptr(actor.AccountID)
		}
	case StagePickedUpFromShop:
		if actor.Role == RoleRider {
			b.DeliveryRiderID = ptr.Ptr(actor.AccountID)
		}
	case StageReceivedByClient:
		b.DeliveryDate = ptr.Ptr(at)
	case FinalStage:
		b.CompletedAt = ptr.Ptr(at)
	}

	b.UpdatedAt = at
	return nil
}

// Cancel отменяет бронирование на любой активной стадии.
// Повторная отмена ничего не меняет и ошибкой не считается.
func (b *Booking) Cancel(at time.Time) error {
	if b.IsCompleted() {
		return ErrBookingCompleted
	}
	if b.IsCanceled {
		return nil
	}

	b.IsCanceled = true
	b.CanceledAt = ptr.Ptr(at)
	b.UpdatedAt = at
	return nil
}

// ShopBookingsFilter фильтр для получения бронирований прачечной
type ShopBookingsFilter struct {
	ShopID    int64           // Обязательный параметр
	StartDate *time.Time      // Начало периода по bookingDate (включительно)
	EndDate   *time.Time      // Конец периода по bookingDate (включительно)
	Class     *LifecycleClass // Фильтр по классу жизненного цикла
}

// StateVector прочитанное состояние жизненного цикла, которым обусловлена запись
type StateVector struct {
	Stage      Stage
	IsCanceled bool
	Version    int64
}

// State возвращает текущий вектор состояния
func (b *Booking) State() StateVector {
	return StateVector{Stage: b.Stage, IsCanceled: b.IsCanceled, Version: b.Version}
}
