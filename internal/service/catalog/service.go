package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	catalogRepo "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/infra/storage/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

// Service сервис каталога: прачечные, услуги и прейскуранты
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateShop регистрирует прачечную. Владелец - вызывающая учетная запись прачечной;
// администратор может указать владельца явно.
func (s *Service) CreateShop(ctx context.Context, req *models.CreateShopRequest, actor domain.Actor) (*models.ShopResponse, error) {
	s.logger.Info("CreateShop: creating shop %q by account=%d role=%s", req.Name, actor.AccountID, actor.Role)

	if actor.Role != domain.RoleShop && !actor.IsAdmin() {
		s.logger.Warn("CreateShop: account=%d role=%s may not register shops", actor.AccountID, actor.Role)
		return nil, ErrAccessDenied
	}

	name, err := validateShopName(req.Name)
	if err != nil {
		s.logger.Warn("CreateShop: validation failed: %v", err)
		return nil, err
	}

	ownerID := actor.AccountID
	if actor.IsAdmin() && req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	shop, err := s.repo.CreateShop(ctx, &domain.Shop{OwnerID: ownerID, Name: name, IsActive: true})
	if err != nil {
		s.logger.Error("CreateShop: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateShop - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateShop: created shop id=%d owner=%d", shop.ID, shop.OwnerID)
	return models.FromDomainShop(shop), nil
}

// CreateService добавляет услугу в каталог. Только для администратора.
// Имя приводится к виду "Wash & Fold" и уникально без учета регистра.
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest, actor domain.Actor) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q by account=%d", req.Name, actor.AccountID)

	if !actor.IsAdmin() {
		s.logger.Warn("CreateService: account=%d role=%s is not an admin", actor.AccountID, actor.Role)
		return nil, ErrAccessDenied
	}

	name, err := validateServiceName(req.Name)
	if err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	service, err := s.repo.CreateService(ctx, &domain.LaundryService{Name: name})
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicate) {
			s.logger.Warn("CreateService: service %q already exists", name)
			return nil, ErrDuplicateService
		}
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d name=%q", service.ID, service.Name)
	return models.FromDomainService(service), nil
}

// CreateOffering добавляет услугу каталога в прейскурант прачечной
func (s *Service) CreateOffering(ctx context.Context, req *models.CreateOfferingRequest, actor domain.Actor) (*models.OfferingResponse, error) {
	s.logger.Info("CreateOffering: shop=%d service=%d by account=%d", req.ShopID, req.ServiceCatalogID, actor.AccountID)

	if err := validatePrice(req.Price); err != nil {
		s.logger.Warn("CreateOffering: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkShopAccess(ctx, "CreateOffering", req.ShopID, actor); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetServiceByID(ctx, req.ServiceCatalogID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("CreateOffering: service id=%d not found", req.ServiceCatalogID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateOffering: failed to get service id=%d: %v", req.ServiceCatalogID, err)
		return nil, fmt.Errorf("%w: CreateOffering - failed to get service: %v", ErrInternal, err)
	}

	serviceID := req.ServiceCatalogID
	offering, err := s.repo.CreateOffering(ctx, &domain.ServiceOffering{
		ShopID:           req.ShopID,
		ServiceCatalogID: &serviceID,
		Price:            nullPrice(req.Price),
		IsActive:         true,
	})
	if err != nil {
		s.logger.Error("CreateOffering: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateOffering - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOffering: created offering id=%d for shop=%d", offering.ID, offering.ShopID)
	return models.FromDomainOffering(offering), nil
}

// UpdateOffering меняет цену и/или активность предложения. Удаления нет - только деактивация.
func (s *Service) UpdateOffering(ctx context.Context, offeringID int64, req *models.UpdateOfferingRequest, actor domain.Actor) (*models.OfferingResponse, error) {
	s.logger.Info("UpdateOffering: offering id=%d by account=%d", offeringID, actor.AccountID)

	if req.Price == nil && req.IsActive == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if err := validatePrice(req.Price); err != nil {
		s.logger.Warn("UpdateOffering: validation failed: %v", err)
		return nil, err
	}

	offering, err := s.repo.GetOfferingByID(ctx, offeringID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOfferingNotFound) {
			s.logger.Warn("UpdateOffering: offering id=%d not found", offeringID)
			return nil, ErrOfferingNotFound
		}
		s.logger.Error("UpdateOffering: failed to get offering id=%d: %v", offeringID, err)
		return nil, fmt.Errorf("%w: UpdateOffering - failed to get offering: %v", ErrInternal, err)
	}

	if err := s.checkShopAccess(ctx, "UpdateOffering", offering.ShopID, actor); err != nil {
		return nil, err
	}

	if req.Price != nil {
		offering.Price = nullPrice(req.Price)
	}
	if req.IsActive != nil {
		offering.IsActive = *req.IsActive
	}

	updated, err := s.repo.UpdateOffering(ctx, offering)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrOfferingNotFound) {
			return nil, ErrOfferingNotFound
		}
		s.logger.Error("UpdateOffering: repository error for offering id=%d: %v", offeringID, err)
		return nil, fmt.Errorf("%w: UpdateOffering - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateOffering: offering id=%d updated, active=%t", updated.ID, updated.IsActive)
	return models.FromDomainOffering(updated), nil
}

// ListShopOfferings получает прейскурант прачечной
func (s *Service) ListShopOfferings(ctx context.Context, shopID int64) (*models.OfferingListResponse, error) {
	s.logger.Info("ListShopOfferings: fetching offerings for shop=%d", shopID)

	if _, err := s.getShop(ctx, "ListShopOfferings", shopID); err != nil {
		return nil, err
	}

	offerings, err := s.repo.ListOfferingsByShop(ctx, shopID)
	if err != nil {
		s.logger.Error("ListShopOfferings: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: ListShopOfferings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOfferingList(offerings), nil
}

// Вспомогательные методы

func (s *Service) getShop(ctx context.Context, op string, shopID int64) (*domain.Shop, error) {
	shop, err := s.repo.GetShopByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrShopNotFound) {
			s.logger.Warn("%s: shop id=%d not found", op, shopID)
			return nil, ErrShopNotFound
		}
		s.logger.Error("%s: failed to get shop id=%d: %v", op, shopID, err)
		return nil, fmt.Errorf("%w: %s - failed to get shop: %v", ErrInternal, op, err)
	}
	return shop, nil
}

// checkShopAccess проверяет, что вызывающий - владелец прачечной или администратор
func (s *Service) checkShopAccess(ctx context.Context, op string, shopID int64, actor domain.Actor) error {
	shop, err := s.getShop(ctx, op, shopID)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role != domain.RoleShop || shop.OwnerID != actor.AccountID {
		s.logger.Warn("%s: account=%d role=%s does not own shop=%d", op, actor.AccountID, actor.Role, shopID)
		return ErrAccessDenied
	}
	return nil
}
