package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/easyhrhq/easyhr/internal/hr/domain"
	"github.com/easyhrhq/easyhr/internal/hr/store"
	"github.com/easyhrhq/easyhr/pkg/httpx"
	"github.com/easyhrhq/easyhr/pkg/jwtx"
	"github.com/easyhrhq/easyhr/pkg/slogx"
)

type ctxKey string

const ctxKeyUser ctxKey = "current_user"

// currentUser returns the authenticated user placed in the context by
// AuthMiddleware. The zero value means an unauthenticated request, which
// only happens if a handler is wired without the middleware.
func currentUser(ctx context.Context) domain.User {
	if u, ok := ctx.Value(ctxKeyUser).(domain.User); ok {
		return u
	}
	return domain.User{}
}

// AuthMiddleware verifies the bearer token and loads the user it names.
// Handlers behind it can trust currentUser(ctx) and scope every query to
// that user's company.
func AuthMiddleware(verifier jwtx.Verifier, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			// 1. The token rides in the Authorization header.
			header := r.Header.Get("Authorization")
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			// 2. Signature, expiry and issuer checks.
			claims, err := verifier.Verify(token)
			if err != nil {
				log.Warn("rejected session token", "error", err)
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			// 3. The user must still exist; tokens outlive deletions.
			user, err := st.Users().GetUserByID(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, "User not found")
					return
				}
				log.Error("failed to load user for session", "error", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, user)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
