package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/NALStudio/NDiscoPlus/internal/config"
	"github.com/NALStudio/NDiscoPlus/internal/interpreter"
	"github.com/NALStudio/NDiscoPlus/internal/storage"
)

// FrameSource returns the most recent frame.
type FrameSource interface {
	LastFrame() interpreter.Frame
	Playing() bool
}

// HealthService provides HTTP health check and debug endpoints.
type HealthService struct {
	cfg     *config.Config
	exports *storage.Exports
	frames  FrameSource
	server  *http.Server
}

// NewHealthService creates a new HealthService.
func NewHealthService(cfg *config.Config, exports *storage.Exports, frames FrameSource) *HealthService {
	return &HealthService{
		cfg:     cfg,
		exports: exports,
		frames:  frames,
	}
}

// Start begins the health check server if enabled.
func (s *HealthService) Start(ctx context.Context) {
	if !s.cfg.Healthcheck.Enabled {
		return
	}

	go s.run(ctx)
}

// Handler returns the HTTP routes.
func (s *HealthService) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "playing": s.frames.Playing()})
	})

	// Debug export of the most recently prepared track
	mux.HandleFunc("GET /debug/effects", func(w http.ResponseWriter, r *http.Request) {
		export, ok, err := s.exports.Latest()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load effect export")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no track prepared"})
			return
		}
		writeJSON(w, http.StatusOK, export)
	})

	mux.HandleFunc("GET /debug/frame", func(w http.ResponseWriter, r *http.Request) {
		frame := s.frames.LastFrame()
		lights := make(map[string]string, len(frame.Lights))
		for id, c := range frame.Lights {
			lights[id.String()] = c.Hex()
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"progress_ms": frame.Progress.Milliseconds(),
			"lights":      lights,
		})
	})

	return mux
}

func (s *HealthService) run(ctx context.Context) {
	addr := fmt.Sprintf("%s:%d", s.cfg.Healthcheck.GetHost(), s.cfg.Healthcheck.GetPort())

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	log.Info().Str("addr", addr).Msg("Starting health check server")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GetShutdownTimeout())
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Health check server shutdown error")
		}
	}()

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("Health check server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}
