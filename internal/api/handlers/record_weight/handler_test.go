package record_weight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/pkg/ptr"
)

type mockService struct{ mock.Mock }

func (m *mockService) RecordWeight(ctx context.Context, id uuid.UUID, req *models.RecordWeightRequest, actor domain.Actor) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	bookingID = uuid.MustParse("6f1c2a8e-2f7b-4c55-9a3e-0c1d2e3f4a5b")
	owner     = domain.Actor{AccountID: 30, Role: domain.RoleShop}
)

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+bookingID.String()+"/weight", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID.String()})
	return req.WithContext(middleware.WithActor(req.Context(), owner))
}

func TestHandler_RecordsWeight(t *testing.T) {
	svc := new(mockService)
	svc.On("RecordWeight", mock.Anything, bookingID, mock.MatchedBy(func(req *models.RecordWeightRequest) bool {
		return req.Weight.String() == "2.35"
	}), owner).Return(&models.BookingResponse{
		ID:         bookingID.String(),
		Weight:     ptr.Ptr("2.35"),
		TotalPrice: ptr.Ptr("106.93"),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest(`{"weight": "2.35"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPrice":"106.93"`)
	svc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "bad weight", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "before pickup", err: bookings.ErrInvalidState, wantStatus: http.StatusConflict},
		{name: "lost race", err: bookings.ErrConflict, wantStatus: http.StatusConflict},
		{name: "internal", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("RecordWeight", mock.Anything, bookingID, mock.Anything, owner).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest(`{"weight": 1.5}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_MalformedWeight(t *testing.T) {
	svc := new(mockService)

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, newRequest(`{"weight": "heavy"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "RecordWeight", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
