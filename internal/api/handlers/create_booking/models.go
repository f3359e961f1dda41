package create_booking

import (
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	createBooking "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID        *int64  `json:"clientId,omitempty"` // Только для администратора
	OfferingID      int64   `json:"offeringId"`
	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Note            *string `json:"note,omitempty"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"` // cash | card | e_wallet
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	clientID := actor.AccountID
	if r.ClientID != nil {
		clientID = *r.ClientID
	}

	return &createBooking.Request{
		Actor:           actor,
		ClientID:        clientID,
		OfferingID:      r.OfferingID,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		Note:            r.Note,
		PaymentMethod:   r.PaymentMethod,
	}
}
