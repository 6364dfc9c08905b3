package middleware

import (
	"context"
	"net/http"
	"net/url"

	apimw "github.com/mcoot/seedroom/internal/api/middleware"
	"github.com/mcoot/seedroom/internal/model"
)

type contextKey string

const (
	playerContextKey contextKey = "player"
)

// GetPlayer retrieves the authenticated player from the request context
// Returns nil if no player is authenticated
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// Auth returns middleware that requires a known player.
// Anyone else is sent to the name page and brought back afterwards.
func Auth(resolver apimw.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := getPlayerFromSession(r, resolver)
			if player == nil {
				http.Redirect(w, r, "/?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets player in context if authenticated, nil otherwise
func OptionalAuth(resolver apimw.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := getPlayerFromSession(r, resolver)
			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getPlayerFromSession(r *http.Request, resolver apimw.Resolver) *model.Player {
	cookie, err := r.Cookie(apimw.SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	player, err := resolver.Resolve(model.PlayerToken(cookie.Value))
	if err != nil {
		return nil
	}

	return &player
}
