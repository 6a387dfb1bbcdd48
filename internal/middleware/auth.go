package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vancomm/every-minesweeper/internal/config"
)

type CtxKey int

const (
	CtxClientClaims CtxKey = iota
)

func WithClientClaims(ctx context.Context, claims *config.ClientClaims) context.Context {
	return context.WithValue(ctx, CtxClientClaims, claims)
}

func ClientClaims(ctx context.Context) (*config.ClientClaims, bool) {
	claims, ok := ctx.Value(CtxClientClaims).(*config.ClientClaims)
	return claims, ok && claims != nil
}

// Auth makes sure every request carries a client identity, issuing a fresh
// one when the cookies are missing or do not verify.
func Auth(logger *slog.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParseClientClaims(r)
			if err != nil {
				claims, err = cookies.Issue(w)
				if err != nil {
					logger.Error("unable to issue client claims", slog.Any("error", err))
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				logger.Debug("issued client identity", slog.String("clientId", claims.ClientID))
			}
			h.ServeHTTP(w, r.WithContext(WithClientClaims(r.Context(), claims)))
		})
	}
}
