package create_shop

import (
	"context"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	CreateShop(ctx context.Context, req *models.CreateShopRequest, actor domain.Actor) (*models.ShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
