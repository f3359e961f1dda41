package sales_report

import (
	"context"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// ReportRepository интерфейс выборки бронирований для отчета
type ReportRepository interface {
	ListReportCandidates(ctx context.Context, filter domain.SalesReportFilter) ([]domain.ReportCandidate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Renderer отрисовывает строки отчета в документ
type Renderer interface {
	Render(title string, rows []domain.SalesReportRow) ([]byte, error)
}

// DocumentSink хранилище документов; возвращает ссылку на загруженный объект
type DocumentSink interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

// Metrics интерфейс метрик отчетов
type Metrics interface {
	IncReportGenerated(granularity, format string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
