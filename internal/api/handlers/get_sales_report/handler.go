package get_sales_report

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

// Handle GET /api/v1/shops/{shopId}/reports/sales
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/reports/sales - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /shops/{id}/reports/sales - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ToUseCaseRequest(shopID, actor, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /shops/{id}/reports/sales - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	report, err := h.useCase.GetSalesReport(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, salesReport.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/reports/sales - Invalid parameters: shop_id=%d, error=%v", shopID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, salesReport.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/reports/sales - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, salesReport.ErrAccessDenied):
			h.logger.Warn("GET /shops/{id}/reports/sales - Access denied: shop_id=%d, account_id=%d", shopID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, salesReport.ErrNoSales):
			h.logger.Info("GET /shops/{id}/reports/sales - No sales: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgNoSales)

		default:
			h.logger.Error("GET /shops/{id}/reports/sales - Failed to build report: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /shops/{id}/reports/sales - Report built: shop_id=%d, rows=%d", shopID, len(report.Rows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(report))
}
