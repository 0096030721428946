package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/api/response"
	"github.com/mindvault/mindvault/internal/domain"
	"github.com/mindvault/mindvault/internal/logging"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SystemHandler handles system-level operations.
type SystemHandler struct {
	db  Pinger
	log *zap.Logger
}

// NewSystemHandler creates a new SystemHandler. A nil db skips the
// database check.
func NewSystemHandler(db Pinger, log *zap.Logger) *SystemHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SystemHandler{db: db, log: log}
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			logging.WithRequestID(r.Context(), h.log).Warn("health check failed", zap.Error(err))
			response.Error(w, domain.NewInternalError(""))
			return
		}
	}
	response.OK(w, map[string]string{"status": "ok"})
}
