package create_shop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) CreateShop(ctx context.Context, req *models.CreateShopRequest, actor domain.Actor) (*models.ShopResponse, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShopResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var shopOwner = domain.Actor{AccountID: 30, Role: domain.RoleShop}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops", strings.NewReader(body))
	return req.WithContext(middleware.WithActor(req.Context(), shopOwner))
}

func TestHandler_Creates(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateShop", mock.Anything, &models.CreateShopRequest{Name: "suds & co"}, shopOwner).
		Return(&models.ShopResponse{ID: 3, OwnerID: 30, Name: "Suds & Co", IsActive: true}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest(`{"name": "suds & co"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Suds & Co"`)

	var body models.ShopResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.ID)
	assert.Equal(t, "Suds & Co", body.Name)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{"name":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"title": "x"}`, wantStatus: http.StatusBadRequest},
		{name: "blank name", body: `{"name": " "}`, err: catalog.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "client", body: `{"name": "x"}`, err: catalog.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", body: `{"name": "x"}`, err: catalog.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("CreateShop", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				svc.AssertNotCalled(t, "CreateShop", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
