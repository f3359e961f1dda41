package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/integrations/directory"
)

type mockResolver struct{ mock.Mock }

func (m *mockResolver) ResolveActor(ctx context.Context, accountID int64) (domain.Actor, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Actor), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func captureActor(got *domain.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if ok {
			*got = actor
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth_HeaderRole(t *testing.T) {
	var got domain.Actor
	h := Auth(nil, nopLogger{})(captureActor(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/pending", nil)
	req.Header.Set(HeaderUserID, "77")
	req.Header.Set(HeaderUserRole, "Rider")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.Actor{AccountID: 77, Role: domain.RoleRider}, got)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		role    string
		wantMsg string
	}{
		{name: "missing id", userID: "", role: "client", wantMsg: msgMissingUserID},
		{name: "non numeric id", userID: "abc", role: "client", wantMsg: msgInvalidUserID},
		{name: "negative id", userID: "-5", role: "client", wantMsg: msgInvalidUserID},
		{name: "unknown role", userID: "42", role: "courier", wantMsg: msgInvalidRole},
		{name: "missing role", userID: "42", role: "", wantMsg: msgInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := Auth(nil, nopLogger{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderUserID, tt.userID)
			req.Header.Set(HeaderUserRole, tt.role)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestAuth_DirectoryResolvesRole(t *testing.T) {
	resolver := new(mockResolver)
	resolver.On("ResolveActor", mock.Anything, int64(30)).Return(domain.Actor{AccountID: 30, Role: domain.RoleShop}, nil)

	var got domain.Actor
	h := Auth(resolver, nopLogger{})(captureActor(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "30")
	req.Header.Set(HeaderUserRole, "admin") // заголовок роли игнорируется
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, domain.RoleShop, got.Role)
	resolver.AssertExpectations(t)
}

func TestAuth_DirectoryErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown account", err: directory.ErrAccountNotFound, wantStatus: http.StatusUnauthorized},
		{name: "directory down", err: errors.Join(directory.ErrUnavailable, errors.New("dial tcp")), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(mockResolver)
			resolver.On("ResolveActor", mock.Anything, int64(42)).Return(domain.Actor{}, tt.err)

			h := Auth(resolver, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				t.Fatal("next handler must not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderUserID, "42")
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
