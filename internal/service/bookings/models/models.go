package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

var (
	// ErrInvalidClass возвращается при неизвестном классе жизненного цикла
	ErrInvalidClass = errors.New("invalid lifecycle class")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("start date is after end date")
)

// Request модели

// AdvanceBookingRequest запрос на отметку следующей стадии
type AdvanceBookingRequest struct {
	Stage string `json:"stage"`
}

// RecordWeightRequest запрос на фиксацию веса белья
type RecordWeightRequest struct {
	Weight decimal.Decimal `json:"weight"`
}

// GetShopBookingsRequest запрос на получение бронирований прачечной
type GetShopBookingsRequest struct {
	ShopID    int64      `json:"shopId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Class     *string    `json:"class,omitempty"`     // active | completed | canceled
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopBookingsRequest) ToDomainFilter() (domain.ShopBookingsFilter, error) {
	filter := domain.ShopBookingsFilter{
		ShopID:    r.ShopID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return filter, ErrInvalidPeriod
	}

	if r.Class != nil {
		class := domain.LifecycleClass(*r.Class)
		switch class {
		case domain.ClassActive, domain.ClassCompleted, domain.ClassCanceled:
			filter.Class = &class
		default:
			return filter, ErrInvalidClass
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         string `json:"bookingId"`
	OfferingID int64  `json:"offeringId"`
	ClientID   int64  `json:"clientId"`
	ShopID     int64  `json:"shopId"`
	ShopName   string `json:"shopName"`

	ServicePrice *string `json:"servicePrice"`
	TotalPrice   *string `json:"totalPrice"`
	Weight       *string `json:"weight"`

	PickupRiderID   *int64 `json:"pickupRiderId,omitempty"`
	DeliveryRiderID *int64 `json:"deliveryRiderId,omitempty"`

	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Note            *string `json:"note,omitempty"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`

	Stage  string `json:"stage"`
	Status string `json:"status"` // active | completed | canceled
	domain.LifecycleFlags

	BookingDate  time.Time  `json:"bookingDate"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CanceledAt   *time.Time `json:"canceledAt,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID.String(),
		OfferingID:      b.OfferingID,
		ClientID:        b.ClientID,
		ShopID:          b.ShopID,
		ShopName:        b.ShopName,
		ServicePrice:    Money(b.ServicePrice),
		TotalPrice:      Money(b.TotalPrice),
		Weight:          Money(b.Weight),
		PickupRiderID:   b.PickupRiderID,
		DeliveryRiderID: b.DeliveryRiderID,
		PickupAddress:   b.PickupAddress,
		DeliveryAddress: b.DeliveryAddress,
		Note:            b.Note,
		Stage:           b.Stage.String(),
		Status:          string(b.Class()),
		LifecycleFlags:  b.Flags(),
		BookingDate:     b.BookingDate,
		DeliveryDate:    b.DeliveryDate,
		CompletedAt:     b.CompletedAt,
		CanceledAt:      b.CanceledAt,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		resp.PaymentMethod = &method
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// Money форматирует денежное значение с двумя знаками после запятой; nil для NULL
func Money(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(domain.MoneyScale)
	return &s
}
