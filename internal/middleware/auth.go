package middleware

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// UserEmailContextKey is the key for storing the caller's email in context
const UserEmailContextKey ContextKey = "userEmail"

// userEmailHeader is set by the authenticating reverse proxy in front of
// this service. The service itself performs no credential checks.
const userEmailHeader = "X-User-Email"

// RequireUser ensures the request carries an authenticated user identity
// and puts the email into the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get(userEmailHeader)
		if email == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailContextKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserEmailFromContext retrieves the caller's email from the context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailContextKey).(string)
	return email, ok && email != ""
}
