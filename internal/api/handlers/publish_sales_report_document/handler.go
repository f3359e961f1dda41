package publish_sales_report_document

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

const (
	msgInvalidShopID      = "некорректный ID прачечной"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidParams      = "некорректные параметры отчета"
	msgShopNotFound       = "прачечная не найдена"
	msgForbidden          = "доступ запрещен"
	msgNoSales            = "за выбранный период продаж нет"
	msgStorageUnavailable = "хранилище отчетов недоступно"
)

type Handler struct {
	useCase SalesReportUseCase
	logger  Logger
}

func NewHandler(useCase SalesReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/shops/{shopId}/reports/sales/document
// Query params те же, что у GET отчета; в ответе временная ссылка на PDF
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /shops/{id}/reports/sales/document - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /shops/{id}/reports/sales/document - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	q, err := handlers.ParseReportQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("POST /shops/{id}/reports/sales/document - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	published, err := h.useCase.PublishSalesReportDocument(r.Context(), &salesReport.Request{
		Actor:       actor,
		ShopID:      shopID,
		Granularity: q.Granularity,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		Timezone:    q.Timezone,
	})
	if err != nil {
		switch {
		case errors.Is(err, salesReport.ErrInvalidInput):
			h.logger.Warn("POST /shops/{id}/reports/sales/document - Invalid parameters: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, salesReport.ErrShopNotFound):
			h.logger.Warn("POST /shops/{id}/reports/sales/document - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, salesReport.ErrAccessDenied):
			h.logger.Warn("POST /shops/{id}/reports/sales/document - Access denied: shop_id=%d, account_id=%d", shopID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, salesReport.ErrNoSales):
			h.logger.Info("POST /shops/{id}/reports/sales/document - No sales: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgNoSales)

		case errors.Is(err, salesReport.ErrStorageDisabled):
			h.logger.Warn("POST /shops/{id}/reports/sales/document - Storage disabled")
			handlers.RespondServiceUnavailable(w, msgStorageUnavailable)

		default:
			h.logger.Error("POST /shops/{id}/reports/sales/document - Failed to publish report: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops/{id}/reports/sales/document - Report published: shop_id=%d, file=%s", shopID, published.Filename)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(published))
}
