package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reel/internal/history"
	"reel/internal/layout"
	"reel/internal/logging"
	"reel/internal/pipeline"
	"reel/internal/services"
	"reel/internal/shotlist"
)

// RunLister reads recorded runs. *history.Store implements it.
type RunLister interface {
	ListRuns(ctx context.Context, opts history.ListOptions) ([]history.Run, error)
}

// Options configures a Server.
type Options struct {
	Root         string
	Runner       *pipeline.Runner
	Runs         RunLister
	Token        string
	DefaultSteps []string
	Logger       *slog.Logger
}

// Server is the HTTP façade over one project.
type Server struct {
	root         string
	runner       *pipeline.Runner
	runs         RunLister
	token        string
	defaultSteps []string
	logger       *slog.Logger
}

// New builds a server. A nil Runner gets the built-in registry.
func New(opts Options) *Server {
	runner := opts.Runner
	if runner == nil {
		runner = &pipeline.Runner{Registry: pipeline.NewRegistry(opts.Logger), Logger: opts.Logger}
	}
	steps := opts.DefaultSteps
	if len(steps) == 0 {
		steps = pipeline.StepNames
	}
	return &Server{
		root:         opts.Root,
		runner:       runner,
		runs:         opts.Runs,
		token:        opts.Token,
		defaultSteps: append([]string(nil), steps...),
		logger:       logging.NewComponentLogger(opts.Logger, "api-server"),
	}
}

// endpoints is the route table; the index lists it verbatim.
var endpoints = []Endpoint{
	{http.MethodGet, "/api/status", "project root and registered steps"},
	{http.MethodGet, "/api/episodes", "episode directories"},
	{http.MethodPost, "/api/episodes/{episode}/generate", "run pipeline steps for an episode"},
	{http.MethodGet, "/api/episodes/{episode}/files", "files under an episode"},
	{http.MethodGet, "/api/file", "text of one project file (?path=)"},
	{http.MethodGet, "/api/shotlist/summary", "shot counts and runtime (?episode=)"},
	{http.MethodGet, "/api/runs", "recorded runs (?episode=&limit=)"},
}

// Handler returns the routed, authenticated handler.
func (s *Server) Handler() http.Handler {
	handlers := map[string]http.HandlerFunc{
		"/api/status":                      s.handleStatus,
		"/api/episodes":                    s.handleEpisodes,
		"/api/episodes/{episode}/generate": s.handleGenerate,
		"/api/episodes/{episode}/files":    s.handleFiles,
		"/api/file":                        s.handleFile,
		"/api/shotlist/summary":            s.handleSummary,
		"/api/runs":                        s.handleRuns,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	for _, ep := range endpoints {
		mux.HandleFunc(ep.Method+" "+ep.Path, handlers[ep.Path])
	}
	return authMiddleware(s.token, mux)
}

// ListenAndServe serves on bind until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, bind string) error {
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, IndexResponse{Name: "reel", Endpoints: endpoints})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, StatusResponse{
		OK:      true,
		Root:    s.root,
		Steps:   s.runner.Registry.Names(),
		History: s.runs != nil,
	})
}

func (s *Server) handleEpisodes(w http.ResponseWriter, r *http.Request) {
	refs, err := layout.ListEpisodes(s.root)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, refs)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	episode, ok := s.episodeParam(w, r.PathValue("episode"))
	if !ok {
		return
	}
	var req GenerateRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeStatus(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
	}
	if req.Steps == nil {
		req.Steps = s.defaultSteps
	}

	report, err := s.runner.Run(r.Context(), pipeline.Request{
		Root:    s.root,
		Episode: episode,
		Steps:   req.Steps,
		Force:   req.Force,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, GenerateResponse{
		OK:      true,
		RunID:   report.RunID,
		Episode: episode,
		Steps:   req.Steps,
		Force:   req.Force,
		Results: report.Steps,
	})
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	episode, ok := s.episodeParam(w, r.PathValue("episode"))
	if !ok {
		return
	}
	ep := layout.NewEpisode(s.root, episode)
	if info, err := os.Stat(ep.Dir()); err != nil || !info.IsDir() {
		s.writeStatus(w, http.StatusNotFound, "episode not found")
		return
	}
	files, err := ep.ListFiles()
	if err != nil {
		s.writeError(w, services.Wrap(services.ErrIO, "api", "list files", ep.Dir(), err))
		return
	}
	if files == nil {
		files = []string{}
	}
	s.writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path, status, msg := s.resolveProjectPath(r.URL.Query().Get("path"))
	if status != 0 {
		s.writeStatus(w, status, msg)
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		s.writeStatus(w, http.StatusNotFound, "file not found")
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.writeError(w, services.Wrap(services.ErrIO, "api", "read file", path, err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, strings.ToValidUTF8(string(data), "\uFFFD"))
}

// resolveProjectPath confines rel to the project root and refuses anything
// inside a .git directory. A non-zero status reports the rejection.
func (s *Server) resolveProjectPath(rel string) (string, int, string) {
	if strings.TrimSpace(rel) == "" {
		return "", http.StatusBadRequest, "path is required"
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return "", http.StatusInternalServerError, "resolve project root"
	}
	full := filepath.Clean(filepath.Join(root, filepath.FromSlash(rel)))
	inside, err := filepath.Rel(root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", http.StatusBadRequest, "path escapes project root"
	}
	for _, part := range strings.Split(filepath.ToSlash(inside), "/") {
		if part == ".git" {
			return "", http.StatusForbidden, "forbidden"
		}
	}
	return full, 0, ""
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	episode, ok := s.episodeParam(w, r.URL.Query().Get("episode"))
	if !ok {
		return
	}
	path := layout.NewEpisode(s.root, episode).Path(layout.ShotlistFile)
	rows, err := shotlist.ReadFile(path)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			s.writeStatus(w, http.StatusNotFound, "shotlist not found")
			return
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newSummaryResponse(episode, shotlist.Summarize(rows)))
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.writeJSON(w, http.StatusOK, RunListResponse{Runs: []history.Run{}})
		return
	}
	query := r.URL.Query()
	opts := history.ListOptions{}
	if raw := strings.TrimSpace(query.Get("episode")); raw != "" {
		ep, ok := s.episodeParam(w, raw)
		if !ok {
			return
		}
		opts.Episode = ep
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.writeStatus(w, http.StatusBadRequest, "invalid limit")
			return
		}
		opts.Limit = limit
	}
	runs, err := s.runs.ListRuns(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RunListResponse{Runs: runs})
}

func (s *Server) episodeParam(w http.ResponseWriter, raw string) (int, bool) {
	episode, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || episode < 1 {
		s.writeStatus(w, http.StatusBadRequest, fmt.Sprintf("invalid episode %q", raw))
		return 0, false
	}
	return episode, true
}

// statusFor maps error markers onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrEpisodeLocked):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", logging.Error(err))
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: services.Kind(err)})
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, s.logger, status, payload)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.Error(err))
	}
}
