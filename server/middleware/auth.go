package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/indieinfra/vitrine/auth"
	"github.com/indieinfra/vitrine/server/resp"
	"github.com/indieinfra/vitrine/server/state"
	"github.com/indieinfra/vitrine/server/util"
)

func extractBearerHeader(header string) string {
	if header == "" {
		return ""
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return token
}

// RequireAdmin wraps a downstream handler. It extracts a Bearer token from
// the Authorization header, resolves it to an approved admin account, and
// aborts the request when either step fails. The admin and a request-scoped
// logger are placed on the context for the handler.
func RequireAdmin(st *state.VitrineState, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(extractBearerHeader(r.Header.Get("Authorization")))
		if token == "" {
			resp.WriteUnauthorized(w, "An access token is required")
			return
		}

		admin, err := st.Admins.Authenticate(r.Context(), token)
		if err != nil {
			if st.Cfg.Debug {
				log.Printf("debug: token rejected: %v", err)
			}

			resp.WriteForbidden(w, "Token validation failed")
			return
		}

		rl := util.WithRequest(log.Default(), r, admin.Email)
		ctx := util.ContextWithLogger(r.Context(), rl)
		next.ServeHTTP(w, r.WithContext(auth.AddAdmin(ctx, admin)))
	})
}
