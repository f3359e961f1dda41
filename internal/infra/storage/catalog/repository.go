package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/dbmetrics"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/psqlbuilder"
)

const (
	tableShops     = "shops"
	tableServices  = "laundry_services"
	tableOfferings = "service_offerings"

	uniqueViolation = "23505"
)

var (
	shopColumns     = []string{"id", "owner_id", "name", "is_active", "created_at", "updated_at"}
	offeringColumns = []string{"id", "shop_id", "service_id", "price", "is_active", "created_at", "updated_at"}
)

// Repository репозиторий каталога: прачечные, услуги и предложения прачечных
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateShop создает прачечную
func (r *Repository) CreateShop(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableShops).
		Columns("owner_id", "name", "is_active").
		Values(shop.OwnerID, shop.Name, shop.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateShop - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateShop - execute insert: %v", ErrExecQuery, err)
	}

	return shop, nil
}

// GetShopByID получает прачечную по ID
func (r *Repository) GetShopByID(ctx context.Context, id int64) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shopColumns...).
		From(tableShops).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopByID - build select query: %v", ErrBuildQuery, err)
	}

	var shop domain.Shop
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.IsActive,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopByID - scan shop: %v", ErrScanRow, err)
	}

	return &shop, nil
}

// CreateService добавляет услугу в каталог.
// Имя уникально без учета регистра, повтор возвращает ErrDuplicate.
func (r *Repository) CreateService(ctx context.Context, service *domain.LaundryService) (*domain.LaundryService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableServices).
		Columns("name").
		Values(service.Name).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.CreatedAt)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: CreateService - service %q", ErrDuplicate, service.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return service, nil
}

// GetServiceByID получает услугу каталога по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.LaundryService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "created_at").
		From(tableServices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.LaundryService
	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &service.Name, &service.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// CreateOffering добавляет услугу в прейскурант прачечной
func (r *Repository) CreateOffering(ctx context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableOfferings).
		Columns("shop_id", "service_id", "price", "is_active").
		Values(offering.ShopID, offering.ServiceCatalogID, offering.Price, offering.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOffering - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&offering.ID, &offering.CreatedAt, &offering.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOffering - execute insert: %v", ErrExecQuery, err)
	}

	return offering, nil
}

// GetOfferingByID получает предложение прачечной по ID
func (r *Repository) GetOfferingByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offeringColumns...).
		From(tableOfferings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferingByID - build select query: %v", ErrBuildQuery, err)
	}

	offering, err := scanOffering(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferingByID - scan offering: %v", ErrScanRow, err)
	}

	return offering, nil
}

// GetOfferingDetails получает предложение вместе с прачечной и названием услуги.
// Удаленная из каталога услуга дает ServiceName == nil; отсутствующая прачечная - ErrShopNotFound.
func (r *Repository) GetOfferingDetails(ctx context.Context, id int64) (*domain.OfferingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"o.id",
		"o.shop_id",
		"o.service_id",
		"o.price",
		"o.is_active",
		"o.created_at",
		"o.updated_at",
		"sh.name",
		"sh.owner_id",
		"s.name",
	).
		From("service_offerings o").
		LeftJoin("shops sh ON sh.id = o.shop_id").
		LeftJoin("laundry_services s ON s.id = o.service_id").
		Where(squirrel.Eq{"o.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferingDetails - build select query: %v", ErrBuildQuery, err)
	}

	var (
		details     domain.OfferingDetails
		shopName    sql.NullString
		shopOwnerID sql.NullInt64
		serviceName sql.NullString
	)
	o := &details.Offering
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.ShopID,
		&o.ServiceCatalogID,
		&o.Price,
		&o.IsActive,
		&o.CreatedAt,
		&o.UpdatedAt,
		&shopName,
		&shopOwnerID,
		&serviceName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOfferingDetails - scan offering: %v", ErrScanRow, err)
	}

	if !shopName.Valid {
		return nil, fmt.Errorf("%w: GetOfferingDetails - offering %d references shop %d", ErrShopNotFound, o.ID, o.ShopID)
	}
	details.ShopName = shopName.String
	details.ShopOwnerID = shopOwnerID.Int64
	if serviceName.Valid {
		name := serviceName.String
		details.ServiceName = &name
	}

	return &details, nil
}

// UpdateOffering сохраняет цену и активность предложения
func (r *Repository) UpdateOffering(ctx context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableOfferings).
		Set("price", offering.Price).
		Set("is_active", offering.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": offering.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateOffering - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&offering.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateOffering - execute update: %v", ErrExecQuery, err)
	}

	return offering, nil
}

// ListOfferingsByShop получает прейскурант прачечной
func (r *Repository) ListOfferingsByShop(ctx context.Context, shopID int64) ([]*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offeringColumns...).
		From(tableOfferings).
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOfferingsByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOfferingsByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.ServiceOffering, 0)
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOfferingsByShop - scan row: %v", ErrScanRow, err)
		}
		offerings = append(offerings, offering)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOfferingsByShop - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffering(row rowScanner) (*domain.ServiceOffering, error) {
	var o domain.ServiceOffering
	err := row.Scan(
		&o.ID,
		&o.ShopID,
		&o.ServiceCatalogID,
		&o.Price,
		&o.IsActive,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
