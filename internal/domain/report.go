package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnknownServiceName метка для бронирований, услуга которых не разрешилась в каталоге
const UnknownServiceName = "Unknown Service"

// Granularity размер временной корзины отчета
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity разбирает гранулярность отчета
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	}
	return "", fmt.Errorf("unknown report granularity %q", s)
}

// SalesReportRow строка отчета о продажах (не хранится)
type SalesReportRow struct {
	BucketStart       time.Time
	ServiceName       string
	NumberOfOrders    int
	AverageOrderValue decimal.Decimal
	TotalSalesAmount  decimal.Decimal
}

// ReportCandidate бронирование в форме, нужной для агрегации
type ReportCandidate struct {
	BookingID   uuid.UUID
	ShopID      int64
	BookingDate time.Time
	TotalPrice  decimal.NullDecimal
	ServiceName *string
	IsCanceled  bool
}

// SalesReportFilter диапазон выборки для отчета, обе границы включительно
type SalesReportFilter struct {
	ShopID int64
	From   time.Time
	To     time.Time
}
