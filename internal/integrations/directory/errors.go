package directory

import "errors"

var (
	// ErrAccountNotFound возвращается, когда учетной записи нет в каталоге
	ErrAccountNotFound = errors.New("directory: account not found")

	// ErrUnavailable возвращается, когда каталог недоступен или отвечает 5xx
	ErrUnavailable = errors.New("directory: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("directory: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory: internal error")
)
