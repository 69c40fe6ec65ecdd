// Package preview serves a built plot over HTTP for local inspection: the
// interactive document at / and server-rendered panel fragments at
// /points/{index}.
package preview

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pointmap/pointmap/internal/panel"
	"github.com/pointmap/pointmap/internal/plot"
)

// Server serves one built plot.
type Server struct {
	router   chi.Router
	plot     *plot.Plot
	renderer *panel.Renderer
	document string
}

// New renders the plot document once and returns a server for it.
func New(p *plot.Plot) (*Server, error) {
	document, err := p.HTML()
	if err != nil {
		return nil, err
	}
	s := &Server{
		router:   chi.NewRouter(),
		plot:     p,
		renderer: panel.NewRenderer(p.Details()),
		document: document,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Get("/", s.handleIndex)
	s.router.Get("/points/{index}", s.handlePoint)
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("Serving data map on %s (%d points)", addr, s.plot.NumPoints())
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.document))
}

// handlePoint renders the detail panel for one point on the server side.
// Unknown indices are not errors; they fall back to hover text exactly like
// the in-browser renderer.
func (s *Server) handlePoint(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}

	hover := r.URL.Query().Get("hover")
	if hover == "" {
		if texts := s.plot.HoverText(); index >= 0 && index < len(texts) {
			hover = texts[index]
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.renderer.Render(hover, index)))
}
