package catalog

import "errors"

var (
	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrOfferingNotFound возвращается, когда предложение прачечной не найдено
	ErrOfferingNotFound = errors.New("offering not found")

	// ErrDuplicateService возвращается при попытке добавить услугу с существующим именем
	ErrDuplicateService = errors.New("service with this name already exists")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
