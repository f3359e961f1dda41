package update_offering

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
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateOffering(ctx context.Context, offeringID int64, req *models.UpdateOfferingRequest, actor domain.Actor) (*models.OfferingResponse, error) {
	args := m.Called(ctx, offeringID, req, actor)
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

func newRequest(offeringID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/offerings/"+offeringID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"offeringId": offeringID})
	return req.WithContext(middleware.WithActor(req.Context(), shopOwner))
}

func TestHandler_Deactivates(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateOffering", mock.Anything, int64(11), mock.MatchedBy(func(req *models.UpdateOfferingRequest) bool {
		return req.Price == nil && req.IsActive != nil && !*req.IsActive
	}), shopOwner).Return(&models.OfferingResponse{ID: 11, ShopID: 3, IsActive: false}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("11", `{"isActive": false}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isActive":false`)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "empty update", err: catalog.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown offering", err: catalog.ErrOfferingNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign shop", err: catalog.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", err: catalog.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("UpdateOffering", mock.Anything, int64(11), mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest("11", `{}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_InvalidOfferingID(t *testing.T) {
	svc := new(mockService)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("eleven", `{"isActive": true}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateOffering", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
