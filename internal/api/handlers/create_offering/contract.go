package create_offering

import (
	"context"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	CreateOffering(ctx context.Context, req *models.CreateOfferingRequest, actor domain.Actor) (*models.OfferingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
