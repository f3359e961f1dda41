package get_sales_report

import (
	"net/url"
	"time"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

// SalesReportRow строка отчета
type SalesReportRow struct {
	Period            string `json:"period"`
	ServiceName       string `json:"serviceName"`
	NumberOfOrders    int    `json:"numberOfOrders"`
	AverageOrderValue string `json:"averageOrderValue"`
	TotalSalesAmount  string `json:"totalSalesAmount"`
}

// SalesReportResponse HTTP response model
type SalesReportResponse struct {
	ShopID      int64            `json:"shopId"`
	ShopName    string           `json:"shopName"`
	Granularity string           `json:"granularity"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Timezone    string           `json:"timezone"`
	Rows        []SalesReportRow `json:"rows"`
	TotalOrders int              `json:"totalOrders"`
	TotalSales  string           `json:"totalSales"`
}

// ToUseCaseRequest собирает запрос отчета из query параметров
func ToUseCaseRequest(shopID int64, actor domain.Actor, query url.Values) (*salesReport.Request, error) {
	q, err := handlers.ParseReportQuery(query)
	if err != nil {
		return nil, err
	}

	return &salesReport.Request{
		Actor:       actor,
		ShopID:      shopID,
		Granularity: q.Granularity,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		Timezone:    q.Timezone,
	}, nil
}

// FromUseCaseResponse конвертирует отчет в HTTP response
func FromUseCaseResponse(resp *salesReport.Response) *SalesReportResponse {
	rows := make([]SalesReportRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		rows = append(rows, SalesReportRow{
			Period:            r.BucketStart.Format(domain.DateFormat),
			ServiceName:       r.ServiceName,
			NumberOfOrders:    r.NumberOfOrders,
			AverageOrderValue: r.AverageOrderValue.StringFixed(domain.MoneyScale),
			TotalSalesAmount:  r.TotalSalesAmount.StringFixed(domain.MoneyScale),
		})
	}

	return &SalesReportResponse{
		ShopID:      resp.ShopID,
		ShopName:    resp.ShopName,
		Granularity: string(resp.Granularity),
		From:        resp.From.Format(time.RFC3339),
		To:          resp.To.Format(time.RFC3339),
		Timezone:    resp.Timezone,
		Rows:        rows,
		TotalOrders: resp.TotalOrders,
		TotalSales:  resp.TotalSales.StringFixed(domain.MoneyScale),
	}
}
