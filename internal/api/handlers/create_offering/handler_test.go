package create_offering

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) CreateOffering(ctx context.Context, req *models.CreateOfferingRequest, actor domain.Actor) (*models.OfferingResponse, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OfferingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var shopOwner = domain.Actor{AccountID: 30, Role: domain.RoleShop}

func newRequest(shopID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/"+shopID+"/offerings", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"shopId": shopID})
	return req.WithContext(middleware.WithActor(req.Context(), shopOwner))
}

func TestHandler_Creates(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateOffering", mock.Anything, mock.MatchedBy(func(req *models.CreateOfferingRequest) bool {
		return req.ShopID == 3 && req.ServiceCatalogID == 5 && req.Price != nil && req.Price.StringFixed(2) == "120.00"
	}), shopOwner).Return(&models.OfferingResponse{
		ID:               11,
		ShopID:           3,
		ServiceCatalogID: ptr.Ptr[int64](5),
		Price:            ptr.Ptr("120.00"),
		IsActive:         true,
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("3", `{"serviceId": 5, "price": "120.00"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"120.00"`)
	svc.AssertExpectations(t)
}

func TestHandler_RejectsShopIDInBody(t *testing.T) {
	svc := new(mockService)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("3", `{"serviceId": 5, "shopId": 9}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateOffering", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "negative price", err: catalog.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidPrice},
		{name: "unknown shop", err: catalog.ErrShopNotFound, wantStatus: http.StatusNotFound, wantMsg: msgShopNotFound},
		{name: "unknown service", err: catalog.ErrServiceNotFound, wantStatus: http.StatusNotFound, wantMsg: msgServiceNotFound},
		{name: "foreign shop", err: catalog.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "internal", err: catalog.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("CreateOffering", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest("3", `{"serviceId": 5}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
			}
		})
	}
}
