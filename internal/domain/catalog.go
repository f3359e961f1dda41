package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop прачечная
type Shop struct {
	ID        int64
	OwnerID   int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LaundryService запись каталога услуг (например, "Wash & Fold")
type LaundryService struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ServiceOffering услуга каталога в конкретной прачечной со своей ценой
type ServiceOffering struct {
	ID               int64
	ShopID           int64
	ServiceCatalogID *int64
	Price            decimal.NullDecimal
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OfferingDetails предложение вместе с данными прачечной и названием услуги
type OfferingDetails struct {
	Offering    ServiceOffering
	ShopName    string
	ShopOwnerID int64
	ServiceName *string
}
