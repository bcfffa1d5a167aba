package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientUIDCookie identifies an anonymous dashboard visitor for quota
// accounting. Minted on first contact, kept for a year.
const ClientUIDCookie = "db_uid"

type clientUIDKey struct{}

// ClientUID ensures every request carries a client UID: reuse the cookie
// when present, otherwise mint one and set it on the response. The UID is
// stored on the request context for handlers.
func ClientUID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := ""
		if c, err := r.Cookie(ClientUIDCookie); err == nil && c.Value != "" {
			uid = c.Value
		}
		if uid == "" {
			uid = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientUIDCookie,
				Value:    uid,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientUIDKey{}, uid)))
	})
}

// ClientUIDFromContext returns the UID set by the ClientUID middleware, or
// "" when the middleware did not run.
func ClientUIDFromContext(ctx context.Context) string {
	if uid, ok := ctx.Value(clientUIDKey{}).(string); ok {
		return uid
	}
	return ""
}
