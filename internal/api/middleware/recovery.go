package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/api/response"
	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/logging"
)

// Recovery middleware catches panics and returns a 500 error.
func Recovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					correlationID := uuid.NewString()
					logging.WithRequestID(r.Context(), log).Error("panic recovered",
						zap.Any("panic", err),
						zap.String("correlation_id", correlationID),
						zap.ByteString("stack", debug.Stack()),
					)
					response.Error(w, domain.NewInternalError(correlationID))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
