package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Server renders built-in scenes over HTTP
type Server struct {
	port   int
	logger zerolog.Logger
}

// NewServer creates a new web server
func NewServer(port int, logger zerolog.Logger) *Server {
	return &Server{
		port:   port,
		logger: logger.With().Str("component", "server").Logger(),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string        `json:"scene"`      // Built-in scene name
	Width      int           `json:"width"`      // Image width
	MaxSamples int           `json:"maxSamples"` // Samples per pixel
	MaxDepth   int           `json:"maxDepth"`   // Maximum bounce depth
	Seed       int64         `json:"seed"`       // Sampler and scene seed
	Format     output.Format `json:"format"`     // Encoding of the response body
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	EscapedPaths   int     `json:"escapedPaths"`
	AbsorbedPaths  int     `json:"absorbedPaths"`
	ExhaustedPaths int     `json:"exhaustedPaths"`
	AverageBounces float64 `json:"averageBounces"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("starting web server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// handleRender renders one image and returns it encoded in the response body
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, err := scene.Create(req.Scene, scene.Options{
		Width:           req.Width,
		SamplesPerPixel: req.MaxSamples,
		MaxDepth:        req.MaxDepth,
		Seed:            req.Seed,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, sceneObj.RenderConfig, core.NewSeededSampler(req.Seed), s.logger)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// Use request context to detect client disconnection
	startTime := time.Now()
	frame, stats, err := raytracer.RenderContext(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Str("scene", req.Scene).Msg("render aborted")
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(req.Format, &buf, frame); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	statsJSON, err := json.Marshal(toStats(stats, time.Since(startTime)))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("X-Render-Stats", string(statsJSON))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug().Err(err).Str("scene", req.Scene).Msg("writing render response failed")
	}
}

func toStats(stats renderer.RenderStats, elapsed time.Duration) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		EscapedPaths:   stats.EscapedPaths,
		AbsorbedPaths:  stats.AbsorbedPaths,
		ExhaustedPaths: stats.ExhaustedPaths,
		AverageBounces: stats.AverageBounces(),
		ElapsedMs:      elapsed.Milliseconds(),
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "simple", Format: output.FormatPNG}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(query, "maxSamples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 50, 1, 1000); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = 42
	}
	if value := query.Get("format"); value != "" {
		if req.Format, err = output.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	// Performance warning
	if req.Width > 800 && req.MaxSamples > 100 {
		s.logger.Warn().Int("width", req.Width).Int("samples", req.MaxSamples).Msg("large render requested, this may be slow")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "simple"
	}

	sceneObj, err := scene.Create(sceneName, scene.Options{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + sceneName})
		return
	}

	config := sceneObj.RenderConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"aperture":        sceneObj.CameraConfig.Aperture,
			"shutter":         []float64{sceneObj.CameraConfig.Time0, sceneObj.CameraConfig.Time1},
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": 1, "max": 2000},
			"maxSamples": map[string]int{"min": 1, "max": 10000},
			"maxDepth":   map[string]int{"min": 1, "max": 1000},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
