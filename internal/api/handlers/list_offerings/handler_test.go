package list_offerings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/catalog/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListShopOfferings(ctx context.Context, shopID int64) (*models.OfferingListResponse, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OfferingListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(shopID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+shopID+"/offerings", nil)
	return mux.SetURLVars(req, map[string]string{"shopId": shopID})
}

func TestHandler_Lists(t *testing.T) {
	svc := new(mockService)
	svc.On("ListShopOfferings", mock.Anything, int64(3)).Return(&models.OfferingListResponse{
		Offerings: []models.OfferingResponse{{ID: 11, ShopID: 3, IsActive: true}, {ID: 12, ShopID: 3}},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("3"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.OfferingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Offerings, 2)
	assert.Nil(t, body.Offerings[1].Price)
}

func TestHandler_Errors(t *testing.T) {
	svc := new(mockService)
	svc.On("ListShopOfferings", mock.Anything, int64(404)).Return(nil, catalog.ErrShopNotFound)
	svc.On("ListShopOfferings", mock.Anything, int64(500)).Return(nil, catalog.ErrInternal)
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("404"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("500"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, newRequest("x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
