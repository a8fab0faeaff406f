package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"travel_itinerary_planner/config"
	"travel_itinerary_planner/metrics"
	"travel_itinerary_planner/pdf"
	"travel_itinerary_planner/planner"
)

//go:embed web/dist web/dist/* web/dist/assets/*
var embeddedStatic embed.FS

// generateTimeout bounds one completion round including every fallback try.
const generateTimeout = 60 * time.Second

const downloadFilename = "travel_plan.pdf"

type Server struct {
	planner  *planner.Planner
	renderer *pdf.Renderer
	store    *sessionStore
	staticFS http.Handler
	log      *zap.SugaredLogger
}

func New(p *planner.Planner, r *pdf.Renderer, cfg config.Config, log *zap.SugaredLogger) (*Server, error) {
	if p == nil {
		return nil, errors.New("planner required")
	}
	if r == nil {
		r = pdf.NewRenderer()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL * time.Minute
	}

	return &Server{
		planner:  p,
		renderer: r,
		store:    newStore(ttl),
		staticFS: http.FileServer(http.FS(sub)),
		log:      log,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logMiddleware)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleSessionCreate)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleSessionGet)
			r.Post("/", s.handleSessionSubmit)
			r.Post("/reset", s.handleSessionReset)
			r.Get("/download", s.handleDownload)
		})
	})

	r.Handle("/*", s.staticHandler())
	return r
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// fall back to index.html for SPA-ish behavior
		if r.URL.Path == "/" {
			r.URL.Path = "/index.html"
		}
		s.staticFS.ServeHTTP(w, r)
	})
}

// --- Handlers ---

type sessionResponse struct {
	SessionID   string              `json:"session_id"`
	Request     planner.TripRequest `json:"request"`
	Markdown    string              `json:"markdown"`
	HTML        string              `json:"html,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Outline     []string            `json:"outline,omitempty"`
	ModelUsed   string              `json:"model_used,omitempty"`
	GeneratedAt string              `json:"generated_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}
	sess, err := planner.NewSession(uuid.NewString(), s.planner)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	if _, err := sess.Generate(ctx, req); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.store.set(sess)
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

// handleSessionSubmit reruns generation for an existing session. Every
// submission is a fresh completion; nothing is reused from the last one.
func (s *Server) handleSessionSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	req, ok := s.decodeSubmission(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()
	_, err := sess.Generate(ctx, req)
	// the submitted fields stick even when generation fails
	s.store.set(sess)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Reset()
	s.store.set(sess)
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	_, it := sess.Snapshot()
	if it.Markdown == "" {
		writeError(w, http.StatusNotFound, "no itinerary generated yet")
		return
	}

	data, err := s.renderer.Render(it.Markdown)
	if err != nil {
		metrics.PDFRenders.WithLabelValues("error").Inc()
		s.log.Errorw("pdf render failed", "session", sess.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.PDFRenders.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// --- Helpers ---

func (s *Server) decodeSubmission(w http.ResponseWriter, r *http.Request) (planner.TripRequest, bool) {
	var req planner.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return planner.TripRequest{}, false
	}
	if err := planner.ValidateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return planner.TripRequest{}, false
	}
	return req, true
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*planner.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := s.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) snapshot(sess *planner.Session) sessionResponse {
	req, it := sess.Snapshot()
	resp := sessionResponse{
		SessionID: sess.ID,
		Request:   req,
		Markdown:  it.Markdown,
		Summary:   it.Summary,
		Outline:   it.Outline,
		ModelUsed: it.ModelUsed,
	}
	if !it.GeneratedAt.IsZero() {
		resp.GeneratedAt = it.GeneratedAt.Format(time.RFC3339)
	}
	if it.Markdown != "" {
		html, err := mdToHTML(it.Markdown)
		if err != nil {
			s.log.Warnw("markdown preview failed", "session", sess.ID, "error", err)
		} else {
			resp.HTML = html
		}
	}
	return resp
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Infow("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
