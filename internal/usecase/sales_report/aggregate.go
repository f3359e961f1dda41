package sales_report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// Period диапазон агрегации, обе границы включительно
type Period struct {
	From     time.Time
	To       time.Time
	Location *time.Location
}

// Contains сообщает, попадает ли момент в период
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

type groupKey struct {
	bucket  string
	service string
}

type group struct {
	bucketStart time.Time
	service     string
	count       int
	total       decimal.Decimal
}

// Aggregate сворачивает бронирования в строки отчета.
//
// В выборку попадают неотмененные бронирования прачечной shopID, дата которых лежит в периоде;
// незавершенные заказы учитываются (выручка признается при оформлении). Пустая цена считается нулем,
// неразрешенная услуга - UnknownServiceName. Строки упорядочены по началу корзины, затем по названию
// услуги побайтно.
func Aggregate(candidates []domain.ReportCandidate, shopID int64, period Period, granularity domain.Granularity) []domain.SalesReportRow {
	groups := make(map[groupKey]*group)

	for _, c := range candidates {
		if c.IsCanceled || c.ShopID != shopID || !period.Contains(c.BookingDate) {
			continue
		}

		bucketStart := BucketStart(c.BookingDate, granularity, period.Location)
		service := domain.UnknownServiceName
		if c.ServiceName != nil {
			service = *c.ServiceName
		}

		key := groupKey{bucket: bucketStart.Format(domain.DateFormat), service: service}
		g, ok := groups[key]
		if !ok {
			g = &group{bucketStart: bucketStart, service: service, total: decimal.Zero}
			groups[key] = g
		}

		g.count++
		if c.TotalPrice.Valid {
			g.total = g.total.Add(c.TotalPrice.Decimal)
		}
	}

	rows := make([]domain.SalesReportRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.SalesReportRow{
			BucketStart:       g.bucketStart,
			ServiceName:       g.service,
			NumberOfOrders:    g.count,
			TotalSalesAmount:  g.total,
			AverageOrderValue: g.total.DivRound(decimal.NewFromInt(int64(g.count)), domain.MoneyScale),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].BucketStart.Equal(rows[j].BucketStart) {
			return rows[i].BucketStart.Before(rows[j].BucketStart)
		}
		return rows[i].ServiceName < rows[j].ServiceName
	})

	return rows
}

// BucketStart возвращает начало корзины в часовом поясе loc:
// день - полночь календарной даты, неделя - понедельник ISO-недели, месяц - первое число.
func BucketStart(t time.Time, granularity domain.Granularity, loc *time.Location) time.Time {
	local := t.In(loc)
	year, month, day := local.Date()

	switch granularity {
	case domain.GranularityWeek:
		midnight := time.Date(year, month, day, 0, 0, 0, 0, loc)
		sinceMonday := (int(midnight.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -sinceMonday)
	case domain.GranularityMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	}
}

// totals итоги по всем строкам
func totals(rows []domain.SalesReportRow) (int, decimal.Decimal) {
	orders := 0
	sales := decimal.Zero
	for _, r := range rows {
		orders += r.NumberOfOrders
		sales = sales.Add(r.TotalSalesAmount)
	}
	return orders, sales
}
