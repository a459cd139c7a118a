package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/util"
)

// RequireRole 限制路由只允許特定角色存取，需掛在AuthMiddleware之後
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := util.GetTokenPayloadFromContext(r.Context())
			if payload == nil {
				util.ErrorJSON(w, int(errs.UnauthenticatedCode), nil, errs.ErrStrMap[errs.UnauthenticatedCode])
				return
			}

			if _, ok := allowed[payload.Role]; !ok {
				util.ErrorJSON(w, int(errs.UnauthorizedCode), nil, errs.ErrStrMap[errs.UnauthorizedCode])
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
