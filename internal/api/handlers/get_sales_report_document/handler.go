package get_sales_report_document

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
	msgInvalidShopID = "некорректный ID прачечной"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры отчета"
	msgShopNotFound  = "прачечная не найдена"
	msgForbidden     = "доступ запрещен"
	msgNoSales       = "за выбранный период продаж нет"
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

// Handle GET /api/v1/shops/{shopId}/reports/sales/document
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/reports/sales/document - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{id}/reports/sales/document - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	q, err := handlers.ParseReportQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /shops/{id}/reports/sales/document - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	doc, err := h.useCase.GetSalesReportDocument(r.Context(), &salesReport.Request{
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
			h.logger.Warn("GET /shops/{id}/reports/sales/document - Invalid parameters: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, salesReport.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/reports/sales/document - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, salesReport.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/reports/sales/document - Access denied: shop_id=%d, account_id=%d", shopID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, salesReport.ErrNoSales):
			h.logger.Info("GET /shops/{id}/reports/sales/document - No sales: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgNoSales)

		default:
			h.logger.Error("GET /shops/{id}/reports/sales/document - Failed to render report: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/reports/sales/document - Document rendered: shop_id=%d, file=%s, bytes=%d",
		shopID, doc.Filename, len(doc.Data))
	handlers.RespondFile(w, doc.Filename, doc.ContentType, doc.Data)
}
