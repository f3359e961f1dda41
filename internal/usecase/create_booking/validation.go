package create_booking

import (
	"fmt"
	"strings"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// validated нормализованные данные запроса
type validated struct {
	clientID        int64
	pickupAddress   string
	deliveryAddress string
	note            *string
	paymentMethod   *domain.PaymentMethod
}

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) (*validated, error) {
	if req.OfferingID <= 0 {
		return nil, fmt.Errorf("%w: offeringId must be positive", ErrInvalidInput)
	}

	v := &validated{clientID: req.ClientID}
	if req.Actor.Role == domain.RoleClient {
		v.clientID = req.Actor.AccountID
	}
	if v.clientID <= 0 {
		return nil, fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	var err error
	if v.pickupAddress, err = normalizeAddress("pickupAddress", req.PickupAddress); err != nil {
		return nil, err
	}
	if v.deliveryAddress, err = normalizeAddress("deliveryAddress", req.DeliveryAddress); err != nil {
		return nil, err
	}

	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		if domain.RuneLen(note) > domain.MaxNoteLength {
			return nil, fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
		}
		if note != "" {
			v.note = &note
		}
	}

	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(strings.TrimSpace(*req.PaymentMethod))
		if !method.IsValid() {
			return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, *req.PaymentMethod)
		}
		v.paymentMethod = &method
	}

	return v, nil
}

// normalizeAddress схлопывает пробелы, делает первые буквы слов заглавными и проверяет,
// что адрес начинается с заглавной буквы и укладывается в лимит длины
func normalizeAddress(field, address string) (string, error) {
	normalized := domain.NormalizeAddress(address)
	if normalized == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if domain.RuneLen(normalized) > domain.MaxAddressLength {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidInput, field, domain.MaxAddressLength)
	}
	if !domain.StartsWithUpper(normalized) {
		return "", fmt.Errorf("%w: %s must start with an uppercase letter", ErrInvalidInput, field)
	}
	return normalized, nil
}
