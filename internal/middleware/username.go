package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"
)

// UsernameHeader carries the signed-in user's name, set by the auth proxy
// in front of the API. Requests without it are anonymous.
const UsernameHeader = "X-Username"

const maxUsernameLength = 150

type usernameKey struct{}

// Username copies UsernameHeader into the request context. Values that are
// blank, too long or not valid UTF-8 are treated as anonymous.
func Username(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.Header.Get(UsernameHeader))
		if name != "" && utf8.ValidString(name) && utf8.RuneCountInString(name) <= maxUsernameLength {
			r = r.WithContext(WithUsername(r.Context(), name))
		}
		next.ServeHTTP(w, r)
	})
}

// WithUsername returns a copy of ctx carrying name.
func WithUsername(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, usernameKey{}, name)
}

// UsernameFrom returns the user stored by Username, or "" for anonymous requests.
func UsernameFrom(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey{}).(string)
	return name
}

// RequireUsername answers 401 for anonymous requests. Routes that change
// state are wrapped in it so they never reach a service without a user.
func RequireUsername(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UsernameFrom(r.Context()) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"sign in required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
