package webui

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"bhasharag/internal/lang"
)

// Handler serves the page, the static assets, and the fragment endpoint the
// page submits to. Routes are registered by the API server.
type Handler struct {
	orch     *Orchestrator
	renderer *Renderer
	logger   *slog.Logger
	static   http.Handler
}

func NewHandler(orch *Orchestrator, renderer *Renderer, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	staticFS, err := fs.Sub(assetsFS, "assets/static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	return &Handler{
		orch:     orch,
		renderer: renderer,
		logger:   logger,
		static:   http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	}, nil
}

// Static serves the embedded assets under /static/.
func (h *Handler) Static() http.Handler {
	return h.static
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := PageData{}
	for _, code := range lang.Codes() {
		data.Languages = append(data.Languages, PageLanguage{Code: code, Name: lang.Name(code)})
	}

	page, err := h.renderer.Page(data)
	if err != nil {
		h.logger.Error("render page failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, page)
}

// ProcessFragment runs one submission and responds with the results fragment
// plus the out-of-band metrics fragment.
func (h *Handler) ProcessFragment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	view := h.orch.Submit(r.Context(), r.FormValue("text"), r.FormValue("target_lang"))

	// 204 tells htmx to leave both display regions alone.
	if view.Skipped {
		w.Header().Set("HX-Trigger", "refocus-input")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if view.Stale {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, view.ResultsHTML)
	_, _ = fmt.Fprint(w, view.MetricsHTML)
}
