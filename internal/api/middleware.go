package api

import (
	"context"
	"net/http"

	"github.com/ukane-philemon/students/internal/jwt"
)

const jwtHeader = "STUDENTS-Authentication-Token"

type ctxKey string

const adminCtxKey ctxKey = "adminID"

// AuthMiddleware validates the auth token sent with a request, if any, and
// stores the admin id in the request context. Requests without a token pass
// through unauthenticated.
func AuthMiddleware(jwtManager *jwt.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			authToken := req.Header.Get(jwtHeader)
			if authToken == "" {
				next.ServeHTTP(res, req)
				return
			}

			adminID, validToken := jwtManager.IsValidToken(authToken)
			if !validToken {
				writeError(res, http.StatusForbidden, "not authorized")
				return
			}

			// Set the adminCtxKey for use by subsequent handlers.
			req = req.WithContext(context.WithValue(req.Context(), adminCtxKey, adminID))
			next.ServeHTTP(res, req)
		})
	}
}

// requireAdmin rejects requests that were not authenticated by
// AuthMiddleware.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		if !reqAuthenticated(req.Context()) {
			writeError(res, http.StatusForbidden, "not authorized")
			return
		}
		next.ServeHTTP(res, req)
	})
}

// reqAuthenticated checks that the request is authenticated.
func reqAuthenticated(ctx context.Context) bool {
	adminID, _ := ctx.Value(adminCtxKey).(string)
	return adminID != ""
}
