package middleware

import (
	"net/http"
	"strings"

	"github.com/Aman2975/hugli-backend/api/responses"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
	"github.com/Aman2975/hugli-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartOwner resolves the key the cart and draft are stored under. Logged-in
// users own their cart by user ID; guests carry an opaque session token in
// the X-Cart-Session header. Authenticated ownership wins so a guest cart is
// not written to after login.
func CartOwner(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := ""
			if userID := UserIDFromContext(r.Context()); userID != "" {
				owner = "user:" + userID
			} else if session := strings.TrimSpace(r.Header.Get(cartSessionHeader)); session != "" {
				owner = "guest:" + session
			}

			if owner == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session required"))
				return
			}

			ctx := WithCartOwner(r.Context(), owner)
			if logg != nil {
				ctx = logg.WithCartOwner(ctx, owner)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
