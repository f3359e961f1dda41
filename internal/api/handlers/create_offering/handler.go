package create_offering

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

const (
	msgInvalidShopID      = "некорректный ID прачечной"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPrice       = "цена должна быть неотрицательной"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgShopNotFound       = "прачечная не найдена"
	msgServiceNotFound    = "услуга не найдена в каталоге"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/offerings
// Body: {"serviceId": 5, "price": "120.00"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/offerings - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /shops/{id}/offerings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateOfferingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops/{id}/offerings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ShopID = shopID

	offering, err := h.service.CreateOffering(r.Context(), &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/offerings - Validation failed: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidPrice)

		case errors.Is(err, catalog.ErrShopNotFound):
			h.logger.Warn("POST /shops/{id}/offerings - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("POST /shops/{id}/offerings - Service not found: service_id=%d", req.ServiceCatalogID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /shops/{id}/offerings - Access denied: shop_id=%d, account_id=%d", shopID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /shops/{id}/offerings - Failed to create offering: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/offerings - Offering created: offering_id=%d, shop_id=%d", offering.ID, shopID)
	handlers.RespondJSON(w, http.StatusCreated, offering)
}
