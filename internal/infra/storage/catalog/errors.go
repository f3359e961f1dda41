package catalog

import "errors"

var (
	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("catalog.repository: shop not found")

	// ErrServiceNotFound возвращается, когда услуга каталога не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrOfferingNotFound возвращается, когда предложение прачечной не найдено
	ErrOfferingNotFound = errors.New("catalog.repository: offering not found")

	// ErrDuplicate возвращается при нарушении ограничения уникальности
	ErrDuplicate = errors.New("catalog.repository: duplicate entry")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
