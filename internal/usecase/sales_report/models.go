package sales_report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// PDFContentType MIME-тип документа отчета
const PDFContentType = "application/pdf"

// Request модель запроса отчета о продажах
type Request struct {
	Actor       domain.Actor // Вызывающий
	ShopID      int64        // ID прачечной
	Granularity string       // day | week | month
	StartDate   *time.Time   // Первый день периода (учитывается только дата)
	EndDate     *time.Time   // Последний день периода включительно (учитывается только дата)
	Timezone    string       // IANA-имя часового пояса; пусто - пояс по умолчанию
}

// Response модель ответа с отчетом
type Response struct {
	ShopID      int64
	ShopName    string
	Granularity domain.Granularity
	From        time.Time // Начало периода в часовом поясе отчета
	To          time.Time // Конец периода включительно
	Timezone    string
	Rows        []domain.SalesReportRow
	TotalOrders int
	TotalSales  decimal.Decimal
}

// Document отрисованный отчет
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PublishedDocument ссылка на опубликованный отчет
type PublishedDocument struct {
	Filename  string
	URL       string
	ExpiresAt time.Time
}

// Options настройки отчетов
type Options struct {
	DefaultLocation *time.Location
	DocumentTitle   string
	URLExpiry       time.Duration
}
