package main

import (
	"context"
	"net/http"

	"zliu.org/goutil/rest"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	ListenAddr string
	Verbose    bool
}

// GatewayServer is the local development backend the Brain client's
// localhost base URL points at.
type GatewayServer struct {
	config     *GatewayConfig
	serverCfg  *ServerConfig
	detector   TextDetector
	foods      *FoodStore
	metrics    *MetricsCollector
	logger     *Logger
	httpServer *http.Server
}

// NewGatewayServer creates a new GatewayServer. A nil detector leaves the
// process-label route answering 503 until OCR is configured.
func NewGatewayServer(cfg *GatewayConfig, serverCfg *ServerConfig, detector TextDetector, logger *Logger) *GatewayServer {
	return &GatewayServer{
		config:    cfg,
		serverCfg: serverCfg,
		detector:  detector,
		foods:     NewFoodStore(),
		metrics:   NewMetricsCollector(),
		logger:    logger,
	}
}

// Start starts the HTTP server
func (s *GatewayServer) Start() error {
	handler := s.applyMiddleware(s.setupRoutes())

	s.httpServer = &http.Server{
		Addr:    s.serverCfg.ListenAddr,
		Handler: handler,
	}

	rest.Log().Info().Msgf("Starting brain gateway on %s", s.serverCfg.ListenAddr)
	if s.detector == nil {
		rest.Log().Warn().Msg("OCR detector not configured, /routes/process-label will answer 503")
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *GatewayServer) Shutdown(ctx context.Context) error {
	rest.Log().Info().Msg("Shutting down gateway...")
	return s.httpServer.Shutdown(ctx)
}

// setupRoutes configures all HTTP routes
func (s *GatewayServer) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Observability endpoints
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())

	// API routers, each behind its own auth policy
	mux.Handle("/routes/process-label",
		AuthMiddleware(s.config, RouterOCR)(http.HandlerFunc(s.handleProcessLabel)))
	mux.Handle("/routes/chatgpt-food-lookup",
		AuthMiddleware(s.config, RouterRoutes)(http.HandlerFunc(s.handleFoodLookup)))

	// Liveness message at the root
	mux.HandleFunc("/", s.handleRoot)

	return mux
}

// applyMiddleware applies middleware chain
func (s *GatewayServer) applyMiddleware(h http.Handler) http.Handler {
	// Apply in reverse order (last middleware wraps first)
	h = LoggingMiddleware(s.logger)(h)
	h = CORSMiddleware(s.config.AllowedOrigins())(h)
	h = RequestIDMiddleware(h)
	h = RecoveryMiddleware(s.logger)(h)
	return h
}
