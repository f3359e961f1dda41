package get_sales_report

import (
	"context"

	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

type SalesReportUseCase interface {
	GetSalesReport(ctx context.Context, req *salesReport.Request) (*salesReport.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
