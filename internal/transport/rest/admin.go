package rest

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/heartmarshall/vocabindex/internal/service/rebuild"
	"github.com/heartmarshall/vocabindex/internal/transport/middleware"
)

type rebuilder interface {
	RebuildAll(ctx context.Context) (rebuild.Report, error)
}

type cacheInvalidator interface {
	Invalidate()
}

// AdminHandler serves admin REST endpoints.
type AdminHandler struct {
	rebuilder rebuilder
	cache     cacheInvalidator
	log       *slog.Logger

	running sync.Mutex
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(rebuilder rebuilder, cache cacheInvalidator, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		rebuilder: rebuilder,
		cache:     cache,
		log:       logger.With("handler", "admin"),
	}
}

// Rebuild runs a full index rebuild and starts a new reader cache generation
// on success.
// POST /admin/rebuild
func (h *AdminHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireAdmin(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if !h.running.TryLock() {
		writeError(w, http.StatusConflict, "rebuild already running")
		return
	}
	defer h.running.Unlock()

	// A dropped client connection must not roll back a rebuild in progress.
	ctx := context.WithoutCancel(r.Context())

	report, err := h.rebuilder.RebuildAll(ctx)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	h.cache.Invalidate()
	writeJSON(w, http.StatusOK, report)
}
