package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"csvspend/pkg/analyzer"
	"csvspend/pkg/config"
	"csvspend/pkg/models"
	"csvspend/pkg/parser"
)

// Server handles HTTP requests for CSV spending analysis
type Server struct {
	config   *config.Config
	logger   *log.Logger
	mux      *http.ServeMux
	parser   *parser.Parser
	analyzer *analyzer.Analyzer
}

// New creates a new HTTP server
func New(config *config.Config, logger *log.Logger) (*Server, error) {
	keywords := analyzer.DefaultKeywords()
	if config.KeywordsFile != "" {
		kw, err := analyzer.LoadKeywords(config.KeywordsFile)
		if err != nil {
			return nil, err
		}
		keywords = kw
	}

	s := &Server{
		config:   config,
		logger:   logger,
		mux:      http.NewServeMux(),
		parser:   parser.New(logger),
		analyzer: analyzer.New(logger, keywords),
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.withCORS(s.mux)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) setupRoutes() {
	// service description
	s.mux.HandleFunc("/", s.withLogging(s.handleRoot))

	// analysis endpoint
	s.mux.HandleFunc("/analyze", s.withLogging(s.handleAnalyze))
	s.mux.HandleFunc("/healthz", s.withLogging(s.handleHealthz))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.respondError(w, r, http.StatusNotFound, "not found", nil)
		return
	}
	if r.Method != http.MethodGet {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	if err := s.writeJSON(w, http.StatusOK, map[string]string{
		"message":     "CSV Analyzer API",
		"endpoint":    "/analyze",
		"method":      "POST",
		"description": "Upload CSV file to analyze Food category spending",
	}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "failed to read file", err)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".csv") {
		s.respondError(w, r, http.StatusBadRequest, "file must be a csv", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	table, err := s.parser.ProcessBytes(data, header.Filename)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("error processing csv: %v", err), err)
		return
	}

	summary, err := s.analyzer.Analyze(table)
	if err != nil {
		if errors.Is(err, analyzer.ErrNoCategoryColumn) {
			s.respondError(w, r, http.StatusBadRequest, "could not identify category column", err)
			return
		}
		s.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("error processing csv: %v", err), err)
		return
	}

	s.logger.Info("analysis complete", "file", header.Filename,
		"rows", summary.RowCount, "matched", summary.Matched, "answer", summary.Total)

	if err := s.writeJSON(w, http.StatusOK, models.NewResult(summary.Total, s.config.Email)); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// --- helpers ---

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log request start/end and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		s.logger.Debug("http request", "id", requestID, "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "id", requestID, "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
			s.logger.Debug("http response", "id", requestID, "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		}()
		next(w, r)
	}
}

// withCORS allows any origin so browser clients can call the API directly.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
