package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

const (
	csrfCookieName = "csrf"
	csrfFormField  = "_csrf_token"
	csrfContextKey = contextKey("csrf")
)

// GetCSRFToken returns the token forms must echo back in _csrf_token
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(csrfContextKey).(string)
	return token
}

// CSRF returns double-submit cookie protection for form posts.
// Every visitor gets a random token cookie; POSTs must carry the same value
// in the _csrf_token field or are rejected with 403.
func CSRF() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			}

			if r.Method == http.MethodPost {
				submitted := r.PostFormValue(csrfFormField)
				if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
					http.Error(w, "Forbidden", http.StatusForbidden)
					return
				}
			}

			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), csrfContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
