package middleware

import (
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/token"
	"github.com/RoyceAzure/lab/pos/internal/util"
)

// 驗證ctx是否有token payload
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(constants.AuthorizationPayloadKey).(*token.Payload)
		if !ok {
			util.ErrorJSON(w, int(errs.UnauthenticatedCode), nil, errs.ErrStrMap[errs.UnauthenticatedCode])
			return
		}
		next.ServeHTTP(w, r)
	})
}
