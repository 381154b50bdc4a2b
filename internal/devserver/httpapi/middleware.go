package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/common"
	"github.com/dmitrijs2005/cycleshop/internal/devserver/auth"
	"github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const principalIDKey ctxKey = "principalID"

func principalID(ctx context.Context) string {
	id, _ := ctx.Value(principalIDKey).(string)
	return id
}

// authenticate requires a bearer token of the given role.
func (s *Server) authenticate(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeader)
			token, ok := strings.CutPrefix(header, common.BearerPrefix)
			if !ok || token == "" {
				writeMessage(w, http.StatusUnauthorized, "missing token")
				return
			}

			id, err := auth.PrincipalFromToken(token, role, s.jwtSecret)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, common.ErrTokenExpired) {
					msg = "token expired"
				}
				writeMessage(w, http.StatusUnauthorized, msg)
				return
			}
			if role == auth.RoleAdmin && !s.shop.AdminExists(r.Context(), id) {
				writeMessage(w, http.StatusUnauthorized, "unknown admin")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalIDKey, id)))
		})
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
