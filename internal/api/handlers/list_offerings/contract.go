package list_offerings

import (
	"context"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	ListShopOfferings(ctx context.Context, shopID int64) (*models.OfferingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
