package create_shop

import (
	"errors"
	"net/http"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidName        = "некорректное название прачечной"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "регистрировать прачечные могут только владельцы и администраторы"
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

// Handle POST /api/v1/shops
// Body: {"name": "Suds & Co", "ownerId": 30}; ownerId учитывается только для администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /shops - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateShopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	shop, err := h.service.CreateShop(r.Context(), &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /shops - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidName)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /shops - Access denied: account_id=%d, role=%s", actor.AccountID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /shops - Failed to create shop: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops - Shop created: shop_id=%d, owner_id=%d", shop.ID, shop.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, shop)
}
