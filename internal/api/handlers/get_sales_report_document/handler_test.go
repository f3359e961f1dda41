package get_sales_report_document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) GetSalesReportDocument(ctx context.Context, req *salesReport.Request) (*salesReport.Document, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesReport.Document), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(shopID, query string, withActor bool) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+shopID+"/reports/sales/document"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": shopID})
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{AccountID: 1, Role: domain.RoleAdmin}))
	}
	return req
}

func TestHandler_Document(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("GetSalesReportDocument", mock.Anything, mock.MatchedBy(func(req *salesReport.Request) bool {
		return req.ShopID == 3 && req.Granularity == "month"
	})).Return(&salesReport.Document{
		Filename:    "sales-report-3-month-2025-03-01-2025-03-31.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.3 test"),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("3", "?granularity=month&startDate=2025-03-01&endDate=2025-03-31", true))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sales-report-3-month-2025-03-01-2025-03-31.pdf")
	assert.Equal(t, "%PDF-1.3 test", rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid", err: salesReport.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown shop", err: salesReport.ErrShopNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: salesReport.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "empty", err: salesReport.ErrNoSales, wantStatus: http.StatusNotFound},
		{name: "render", err: salesReport.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("GetSalesReportDocument", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, nopLogger{}).Handle(rec, newRequest("3", "", true))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("abc", "", true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("3", "", false))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	uc.AssertNotCalled(t, "GetSalesReportDocument", mock.Anything, mock.Anything)
}
