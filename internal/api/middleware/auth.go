package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/api/handlers"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/domain"
	"github.com/gianmallorca/LaundryDashAPI-2-sub000/internal/integrations/directory"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidUserID  = "некорректный ID пользователя"
	msgInvalidRole    = "некорректная роль пользователя"
	msgUnknownAccount = "учетная запись не найдена"
	msgDirectoryDown  = "сервис учетных записей недоступен"
)

type ctxKey struct{}

// ActorResolver разрешает роль учетной записи
type ActorResolver interface {
	ResolveActor(ctx context.Context, accountID int64) (domain.Actor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth читает X-User-ID и кладет (accountId, role) в контекст запроса.
// С resolver роль берется из каталога учетных записей, без него - из заголовка X-User-Role от gateway.
func Auth(resolver ActorResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if raw == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			accountID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || accountID <= 0 {
				logger.Warn("Auth - Invalid %s header: %q", HeaderUserID, raw)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			var actor domain.Actor
			if resolver != nil {
				actor, err = resolver.ResolveActor(r.Context(), accountID)
				if err != nil {
					switch {
					case errors.Is(err, directory.ErrAccountNotFound):
						handlers.RespondUnauthorized(w, msgUnknownAccount)
					default:
						logger.Error("Auth - Failed to resolve account id=%d: %v", accountID, err)
						handlers.RespondServiceUnavailable(w, msgDirectoryDown)
					}
					return
				}
			} else {
				role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
				if !role.IsValid() {
					logger.Warn("Auth - Invalid %s header for account id=%d: %q", HeaderUserRole, accountID, role)
					handlers.RespondUnauthorized(w, msgInvalidRole)
					return
				}
				actor = domain.Actor{AccountID: accountID, Role: role}
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладет вызывающего в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, actor)
}

// GetActor достает вызывающего из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(ctxKey{}).(domain.Actor)
	return actor, ok
}
