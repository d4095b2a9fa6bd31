package mw

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

const reqIDKey ctxKey = "req_id"

const HeaderRequestID = "X-Request-ID"

// WithRequestID берёт id из заголовка клиента или генерирует новый
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), reqIDKey, id)
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(reqIDKey).(string); ok {
		return id
	}
	return ""
}
