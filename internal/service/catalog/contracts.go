package catalog

import (
	"context"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetShopByID(ctx context.Context, id int64) (*domain.Shop, error)
	CreateService(ctx context.Context, service *domain.LaundryService) (*domain.LaundryService, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.LaundryService, error)
	CreateOffering(ctx context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error)
	GetOfferingByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	UpdateOffering(ctx context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error)
	ListOfferingsByShop(ctx context.Context, shopID int64) ([]*domain.ServiceOffering, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
