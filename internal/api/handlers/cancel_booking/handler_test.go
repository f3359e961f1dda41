package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/middleware"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) Cancel(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, actor)
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
	client    = domain.Actor{AccountID: 42, Role: domain.RoleClient}
)

func newRequest(method string) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/bookings/"+bookingID.String(), nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID.String()})
	return req.WithContext(middleware.WithActor(req.Context(), client))
}

func TestHandler_CancelViaPatchAndDelete(t *testing.T) {
	for _, method := range []string{http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Cancel", mock.Anything, bookingID, client).
				Return(&models.BookingResponse{ID: bookingID.String(), Status: "canceled"}, nil).Once()

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest(method))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"status":"canceled"`)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: msgNotFound},
		{name: "rider cannot cancel", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: msgForbidden},
		{name: "completed", err: bookings.ErrInvalidState, wantStatus: http.StatusConflict, wantMsg: msgCannotCancel},
		{name: "lost race", err: bookings.ErrConflict, wantStatus: http.StatusConflict, wantMsg: msgConflict},
		{name: "internal", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("Cancel", mock.Anything, bookingID, client).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, newRequest(http.MethodPatch))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, rec.Body.String(), tt.wantMsg)
			}
		})
	}
}
