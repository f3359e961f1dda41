package create_booking

import "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"

// Request модель запроса на создание бронирования
type Request struct {
	Actor           domain.Actor // Вызывающий (клиент или администратор)
	ClientID        int64        // Клиент; для клиента всегда равен Actor.AccountID
	OfferingID      int64        // ID предложения прачечной
	PickupAddress   string       // Адрес забора
	DeliveryAddress string       // Адрес доставки
	Note            *string      // Комментарий (опционально)
	PaymentMethod   *string      // cash | card | e_wallet (опционально)
}
