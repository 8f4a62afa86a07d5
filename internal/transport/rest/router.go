package rest

import "net/http"

// Handlers groups the endpoint handlers mounted by NewRouter.
// A nil Admin leaves the admin endpoints unmounted.
type Handlers struct {
	Health *HealthHandler
	Vocab  *VocabHandler
	Admin  *AdminHandler
}

// NewRouter mounts all endpoints on a ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/langvars", h.Vocab.ListLangvars)
	mux.HandleFunc("GET /api/langvars/{uid}", h.Vocab.GetLangvar)
	mux.HandleFunc("GET /api/vocab/{uid}", h.Vocab.Page)
	mux.HandleFunc("GET /api/vocab/{uid}/search", h.Vocab.Search)
	mux.HandleFunc("GET /api/vocab/{uid}/{target}", h.Vocab.Page)

	if h.Admin != nil {
		mux.HandleFunc("POST /admin/rebuild", h.Admin.Rebuild)
	}

	return mux
}
