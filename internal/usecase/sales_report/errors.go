package sales_report

import "errors"

var (
	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("sales_report: shop not found")

	// ErrAccessDenied возвращается, когда вызывающий не может смотреть отчеты прачечной
	ErrAccessDenied = errors.New("sales_report: access denied")

	// ErrNoSales возвращается, когда за период нет ни одной продажи
	ErrNoSales = errors.New("sales_report: no sales in the requested period")

	// ErrStorageDisabled возвращается при публикации отчета без настроенного хранилища
	ErrStorageDisabled = errors.New("sales_report: document storage is disabled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("sales_report: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sales_report: internal error")
)
