package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/seedroom/internal/api/apierr"
	"github.com/mcoot/seedroom/internal/model"
)

// SessionCookie is the cookie holding the player token for browser clients
const SessionCookie = "session"

type contextKey string

const playerContextKey contextKey = "player"

// Resolver looks up the player behind a bearer token
type Resolver interface {
	Resolve(token model.PlayerToken) (model.Player, error)
}

// Auth creates authentication middleware. Requests without a token, or with
// a token no longer known, are rejected with 401.
func Auth(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			player, err := resolver.Resolve(model.PlayerToken(token))
			if err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					err = apierr.NewUnauthorizedError()
				}
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPlayer(r.Context(), player)))
		})
	}
}

// ExtractToken extracts the player token from the request
func ExtractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	// Fall back to cookie
	cookie, err := r.Cookie(SessionCookie)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// WithPlayer stores the authenticated player in ctx
func WithPlayer(ctx context.Context, player model.Player) context.Context {
	return context.WithValue(ctx, playerContextKey, &player)
}

// GetPlayer returns the authenticated player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// MustGetPlayer returns the authenticated player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - auth middleware not applied?")
	}
	return player
}
