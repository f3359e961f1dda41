package update_offering

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
	msgInvalidOfferingID  = "некорректный ID предложения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "нужно передать неотрицательную цену или флаг активности"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "предложение не найдено"
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

// Handle PATCH /api/v1/offerings/{offeringId}
// Body: {"price": "130.00", "isActive": false} - оба поля опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	offeringID, err := strconv.ParseInt(mux.Vars(r)["offeringId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /offerings/{id} - Invalid offering ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfferingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /offerings/{id} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateOfferingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /offerings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	offering, err := h.service.UpdateOffering(r.Context(), offeringID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /offerings/{id} - Validation failed: offering_id=%d, error=%v", offeringID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, catalog.ErrOfferingNotFound), errors.Is(err, catalog.ErrShopNotFound):
			h.logger.Warn("PATCH /offerings/{id} - Offering not found: offering_id=%d", offeringID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /offerings/{id} - Access denied: offering_id=%d, account_id=%d", offeringID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /offerings/{id} - Failed to update offering: offering_id=%d, error=%v", offeringID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /offerings/{id} - Offering updated: offering_id=%d, active=%t", offering.ID, offering.IsActive)
	handlers.RespondJSON(w, http.StatusOK, offering)
}
