package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("shop not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidState возвращается для операций над отмененным или завершенным бронированием
	ErrInvalidState = errors.New("booking is not in an active state")

	// ErrInvalidTransition возвращается, когда целевая стадия не следующая по порядку
	ErrInvalidTransition = errors.New("invalid stage transition")

	// ErrConflict возвращается, когда бронирование изменилось между чтением и записью
	ErrConflict = errors.New("booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
