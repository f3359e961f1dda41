package get_sales_report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	salesReport "github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/usecase/sales_report"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) GetSalesReport(ctx context.Context, req *salesReport.Request) (*salesReport.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesReport.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var owner = domain.Actor{AccountID: 30, Role: domain.RoleShop}

func newRequest(shopID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+shopID+"/reports/sales"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"shopId": shopID})
	return req.WithContext(middleware.WithActor(req.Context(), owner))
}

func TestHandler_Report(t *testing.T) {
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	uc := new(mockUseCase)
	uc.On("GetSalesReport", mock.Anything, mock.MatchedBy(func(req *salesReport.Request) bool {
		return req.ShopID == 3 && req.Granularity == "week" && req.Actor == owner &&
			req.StartDate.Format(domain.DateFormat) == "2025-03-03" &&
			req.EndDate.Format(domain.DateFormat) == "2025-03-16" &&
			req.Timezone == "Asia/Manila"
	})).Return(&salesReport.Response{
		ShopID:      3,
		ShopName:    "Suds & Co",
		Granularity: domain.GranularityWeek,
		From:        from,
		To:          from.AddDate(0, 0, 14).Add(-time.Microsecond),
		Timezone:    "Asia/Manila",
		Rows: []domain.SalesReportRow{{
			BucketStart:       from,
			ServiceName:       "Wash & Fold",
			NumberOfOrders:    2,
			AverageOrderValue: decimal.RequireFromString("50"),
			TotalSalesAmount:  decimal.RequireFromString("100"),
		}},
		TotalOrders: 2,
		TotalSales:  decimal.RequireFromString("100"),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("3", "?granularity=week&startDate=2025-03-03&endDate=2025-03-16&timezone=Asia/Manila"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body SalesReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Rows, 1)
	assert.Equal(t, SalesReportRow{
		Period:            "2025-03-03",
		ServiceName:       "Wash & Fold",
		NumberOfOrders:    2,
		AverageOrderValue: "50.00",
		TotalSalesAmount:  "100.00",
	}, body.Rows[0])
	assert.Equal(t, "100.00", body.TotalSales)
}

func TestHandler_DefaultsToDaily(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("GetSalesReport", mock.Anything, mock.MatchedBy(func(req *salesReport.Request) bool {
		return req.Granularity == "day" && req.StartDate == nil && req.EndDate == nil && req.Timezone == ""
	})).Return(nil, salesReport.ErrNoSales)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("3", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), msgNoSales)
	uc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "invalid", err: salesReport.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidParams},
		{name: "unknown shop", err: salesReport.ErrShopNotFound, wantStatus: http.StatusNotFound, wantMsg: msgShopNotFound},
		{name: "forbidden", err: salesReport.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "empty", err: salesReport.ErrNoSales, wantStatus: http.StatusNotFound, wantMsg: msgNoSales},
		{name: "internal", err: salesReport.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("GetSalesReport", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, nopLogger{}).Handle(rec, newRequest("3", ""))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestHandler_MalformedDate(t *testing.T) {
	uc := new(mockUseCase)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("3", "?startDate=2025-13-01&endDate=2025-03-01"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "GetSalesReport", mock.Anything, mock.Anything)
}
