package publish_sales_report_document

import (
	"context"

	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

type SalesReportUseCase interface {
	PublishSalesReportDocument(ctx context.Context, req *salesReport.Request) (*salesReport.PublishedDocument, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
