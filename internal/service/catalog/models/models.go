package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
)

// Request модели

// CreateShopRequest запрос на регистрацию прачечной
type CreateShopRequest struct {
	Name string `json:"name"`
	// OwnerID учетная запись-владелец; учитывается только для администратора
	OwnerID *int64 `json:"ownerId,omitempty"`
}

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	Name string `json:"name"`
}

// CreateOfferingRequest запрос на добавление услуги в прейскурант прачечной
type CreateOfferingRequest struct {
	ShopID           int64            `json:"-"`
	ServiceCatalogID int64            `json:"serviceId"`
	Price            *decimal.Decimal `json:"price,omitempty"`
}

// UpdateOfferingRequest частичное обновление предложения.
// Все поля опциональны - обновляются только переданные значения.
type UpdateOfferingRequest struct {
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive *bool            `json:"isActive,omitempty"`
}

// Response модели

// ShopResponse ответ с данными прачечной
type ShopResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceResponse ответ с данными услуги каталога
type ServiceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// OfferingResponse ответ с данными предложения прачечной
type OfferingResponse struct {
	ID               int64     `json:"id"`
	ShopID           int64     `json:"shopId"`
	ServiceCatalogID *int64    `json:"serviceId"`
	Price            *string   `json:"price"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// OfferingListResponse прейскурант прачечной
type OfferingListResponse struct {
	Offerings []OfferingResponse `json:"offerings"`
}

// Методы конвертации

func FromDomainShop(s *domain.Shop) *ShopResponse {
	return &ShopResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDomainService(s *domain.LaundryService) *ServiceResponse {
	return &ServiceResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
	}
}

func FromDomainOffering(o *domain.ServiceOffering) *OfferingResponse {
	resp := &OfferingResponse{
		ID:               o.ID,
		ShopID:           o.ShopID,
		ServiceCatalogID: o.ServiceCatalogID,
		IsActive:         o.IsActive,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.Price.Valid {
		price := o.Price.Decimal.StringFixed(domain.MoneyScale)
		resp.Price = &price
	}
	return resp
}

func FromDomainOfferingList(offerings []*domain.ServiceOffering) *OfferingListResponse {
	resp := &OfferingListResponse{
		Offerings: make([]OfferingResponse, 0, len(offerings)),
	}
	for _, o := range offerings {
		resp.Offerings = append(resp.Offerings, *FromDomainOffering(o))
	}
	return resp
}
