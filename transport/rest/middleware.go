package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/kittens-backend/internal/apperror"
	"github.com/rocketscienceinc/kittens-backend/internal/entity"
	"github.com/rocketscienceinc/kittens-backend/internal/pkg"
)

type userKey struct{}

func authenticate(logger *slog.Logger, users userResolver) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := users.ResolveUser(pkg.BearerToken(r))
			if err != nil {
				logger.Debug("rejected request", "path", r.URL.Path, "error", err)
				writeError(w, logger, apperror.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
		})
	}
}

func userFrom(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userKey{}).(*entity.User)
	return user
}
