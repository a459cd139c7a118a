package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/util"
	"github.com/rs/zerolog"
)

// RecoverMiddleware 攔截handler panic，記錄堆疊後回500
// 回應走統一的錯誤格式，不把panic內容露給client
func RecoverMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("request_id", getRequestID(r)).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Interface("panic", rec).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					util.ErrorJSON(w, int(errs.InternalErrorCode), nil, errs.ErrStrMap[errs.InternalErrorCode])
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
