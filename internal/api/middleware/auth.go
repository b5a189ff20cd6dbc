package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/api/handlers"
)

// HeaderUserID заголовок с ID пользователя, проставляемый шлюзом
const HeaderUserID = "X-User-ID"

const msgMissingUserID = "ID utente mancante"

type contextKey string

const userIDKey contextKey = "userID"

// Auth проверяет наличие X-User-ID и кладет его в контекст запроса
// Аутентификация выполняется на шлюзе, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID кладет ID пользователя в контекст (используется в тестах обработчиков)
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
