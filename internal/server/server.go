// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the extraction engine over HTTP. Clients upload a
// policy document as multipart form field "file" and receive the extracted
// record as a flat JSON object.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/policy-extract/internal/extract"
	"github.com/pdiddy/policy-extract/internal/textsource"
	"github.com/pdiddy/policy-extract/pkg/types"
)

// Error messages returned in {"error": ...} bodies.
const (
	msgNoFilePart  = "No file part in the request"
	msgNoSelection = "No selected file"
	msgUnsupported = "Unsupported file type. Please upload a PDF."
	msgTooLarge    = "File too large"
	msgProcessing  = "Error processing PDF: "
)

const (
	formField = "file"

	// multipartMemory is held in memory before parts spill to temp files.
	multipartMemory = 8 << 20

	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves the upload API.
type Server struct {
	cfg    types.ServerConfig
	engine *extract.Engine
	source textsource.Source
	log    *zap.Logger
}

// New creates a Server. A nil logger disables request logging.
func New(cfg types.ServerConfig, engine *extract.Engine, source textsource.Source, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{cfg: cfg, engine: engine, source: source, log: log}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/analyze-policy", s.handleAnalyze)
	return r
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("starting server", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server: shutdown")
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgNoFilePart)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formField)
	if err != nil {
		// A part named "file" without a filename is parsed as a plain
		// value: the client submitted the form with nothing selected.
		if _, ok := r.MultipartForm.Value[formField]; ok {
			writeError(w, http.StatusBadRequest, msgNoSelection)
			return
		}
		writeError(w, http.StatusBadRequest, msgNoFilePart)
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if strings.TrimSpace(header.Filename) == "" {
		writeError(w, http.StatusBadRequest, msgNoSelection)
		return
	}
	if !textsource.Supported(name) {
		writeError(w, http.StatusBadRequest, msgUnsupported)
		return
	}

	path, err := s.storeUpload(file, filepath.Ext(name))
	if err != nil {
		s.log.Error("store upload failed", zap.String("filename", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgProcessing+err.Error())
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("remove upload failed", zap.String("path", path), zap.Error(err))
		}
	}()

	text, err := s.source.Text(r.Context(), path)
	if err != nil {
		s.log.Error("text extraction failed", zap.String("filename", name), zap.Error(err))
		status := http.StatusInternalServerError
		if eris.Is(err, textsource.ErrNotText) {
			status = http.StatusBadRequest
		}
		writeError(w, status, msgProcessing+err.Error())
		return
	}

	rec := s.engine.Extract(text)
	s.log.Info("policy analyzed",
		zap.String("filename", name),
		zap.Int("fields_found", rec.Filled()),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	writeJSON(w, http.StatusOK, rec)
}

// storeUpload copies an upload into the upload directory under a unique
// name and returns its path.
func (s *Server) storeUpload(src io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", eris.Wrapf(err, "server: create upload dir %s", s.cfg.UploadDir)
	}
	path := filepath.Join(s.cfg.UploadDir, uuid.NewString()+strings.ToLower(ext))
	dst, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "server: create %s", path)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", eris.Wrapf(err, "server: write %s", path)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", eris.Wrapf(err, "server: close %s", path)
	}
	return path, nil
}

// logRequests writes one zap entry per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
