package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/esihle/storefront-backend/api/responses"
	pkgerrors "github.com/esihle/storefront-backend/pkg/errors"
	"github.com/esihle/storefront-backend/pkg/config"
	"github.com/esihle/storefront-backend/pkg/logger"
	"github.com/esihle/storefront-backend/pkg/session"
)

// CartSessionHeader carries the signed cart session token in both directions.
const CartSessionHeader = "X-Cart-Session"

// CartSession binds every request to an anonymous cart session. A missing,
// expired or forged token starts a new session; the response always carries
// a freshly signed token so the expiry slides with activity.
func CartSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return cartSession(cfg, logg, time.Now)
}

func cartSession(cfg config.SessionConfig, logg *logger.Logger, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if raw := strings.TrimSpace(r.Header.Get(CartSessionHeader)); raw != "" {
				claims, err := session.Parse(cfg, raw)
				if err != nil {
					if logg != nil {
						logg.Debug(logg.WithField(ctx, "reason", err.Error()), "cart_session.rejected")
					}
				} else {
					sessionID = claims.SessionID
				}
			}
			if sessionID == "" {
				sessionID = session.NewID()
			}

			token, err := session.Mint(cfg, now(), sessionID)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint cart session"))
				return
			}
			w.Header().Set(CartSessionHeader, token)

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
