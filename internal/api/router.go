package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mindvault/mindvault/internal/api/handler"
	"github.com/mindvault/mindvault/internal/api/middleware"
	"github.com/mindvault/mindvault/internal/metrics"
	"github.com/mindvault/mindvault/internal/service"
)

// Options holds the collaborators the router serves.
type Options struct {
	Tasks   *service.TaskService
	DB      handler.Pinger
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// MCP, when set, is mounted at /mcp.
	MCP http.Handler
}

// NewRouter creates and configures the HTTP router.
func NewRouter(opts Options) *chi.Mux {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	// Global middleware chain
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ClientID)
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	systemHandler := handler.NewSystemHandler(opts.DB, log)
	taskHandler := handler.NewTaskHandler(opts.Tasks)

	r.Get("/v1/health", systemHandler.Health)

	r.Route("/v1/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Delete("/", taskHandler.BulkDeleteTasks)
		r.Post("/bulk", taskHandler.BulkCreateTasks)
		r.Get("/search", taskHandler.SearchTasks)
		r.Post("/search/update", taskHandler.SearchAndUpdateTasks)
		r.Get("/{id}", taskHandler.GetTask)
		r.Patch("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}
