// Package middleware содержит HTTP middleware сервера venueops.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mmeshcher/venueops/internal/gateway"
)

type contextKey string

const tenantIDKey contextKey = "tenantID"

const maxTenantIDLength = 128

// Tenant требует заголовок арендатора и добавляет его значение в контекст запроса.
// Аутентификация выполняется внешним сервисом до этого сервера.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(gateway.TenantHeader))
		if tenantID == "" || len(tenantID) > maxTenantIDLength {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

// WithTenantID возвращает контекст с идентификатором арендатора.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// TenantIDFromContext извлекает идентификатор арендатора из контекста запроса.
func TenantIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(tenantIDKey).(string)
	return id, ok && id != ""
}
