package publish_sales_report_document

import (
	"time"

	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

// PublishedDocumentResponse ссылка на опубликованный PDF отчет
type PublishedDocumentResponse struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}

func FromUseCaseResponse(doc *salesReport.PublishedDocument) *PublishedDocumentResponse {
	return &PublishedDocumentResponse{
		Filename:  doc.Filename,
		URL:       doc.URL,
		ExpiresAt: doc.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
