package middleware

import (
	"fmt"
	"net/http"

	"parking-marketplace/pkg/apperror"
	"parking-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// Recover turns a handler panic into a logged internal_error response.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("route", routePattern(r)),
					zap.Stack("stack"),
				)
				utils.ResponseError(w, apperror.Internal(fmt.Errorf("panic: %v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
