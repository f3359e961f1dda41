package create_booking

import "errors"

var (
	// ErrOfferingNotFound возвращается, когда предложение прачечной не найдено
	ErrOfferingNotFound = errors.New("create_booking: offering not found")

	// ErrShopNotFound возвращается, когда прачечная предложения не найдена
	ErrShopNotFound = errors.New("create_booking: shop not found")

	// ErrAccessDenied возвращается, когда вызывающий не может оформлять бронирования
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
