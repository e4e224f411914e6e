package session

import (
	"context"
	"net/http"
)

type contextKey string

const ctxKey contextKey = "session"

// EnsureSession guarantees every request carries a shopper session, creating
// one on first contact so selections have a stable key from the start.
func (m *Manager) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := m.GetSession(r.Context(), r)
		if err != nil {
			data, err = m.CreateSession(r.Context(), w)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), ctxKey, data)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext retrieves session data from the request context.
func FromContext(ctx context.Context) *Data {
	if ctx == nil {
		return nil
	}
	data, ok := ctx.Value(ctxKey).(*Data)
	if !ok {
		return nil
	}
	return data
}
