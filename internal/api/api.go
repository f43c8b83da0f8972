// Package api provides HTTP handlers and the main API server logic for
// StabilityPipe.
//
// It exposes RESTful endpoints for fetching the question bank, submitting
// completed response sets, and retrieving a user's stored results. The API
// integrates with the assessment pipeline, the narrative generator, the
// field-level encryption codec, and the store modules.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FluxWard/StabilityPipe/internal/assessment"
	"github.com/FluxWard/StabilityPipe/internal/catalog"
	"github.com/FluxWard/StabilityPipe/internal/fieldcrypt"
	"github.com/FluxWard/StabilityPipe/internal/genai"
	"github.com/FluxWard/StabilityPipe/internal/store"
)

// DefaultAddr is the default listen address for the API server.
const DefaultAddr = ":8080"

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address for the API server.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server bundles the modules behind the HTTP endpoints.
type Server struct {
	pipeline *assessment.Pipeline
	bank     *catalog.BankCache
	addr     string
}

// NewServer creates a Server around an already-built pipeline and question
// bank cache. Used directly by tests; Run builds the modules from options.
func NewServer(pipeline *assessment.Pipeline, bank *catalog.BankCache, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{pipeline: pipeline, bank: bank, addr: addr}
}

// Run assembles the store, narrative generator, encryption codec and
// assessment pipeline from the provided options, then serves the API until
// the listener fails.
func Run(storeOpts []store.Option, genaiOpts []genai.Option, cryptoOpts []fieldcrypt.Option, apiOpts []Option) error {
	slog.Debug("api.Run invoked", "store_opts", len(storeOpts), "genai_opts", len(genaiOpts), "crypto_opts", len(cryptoOpts), "api_opts", len(apiOpts))

	st, err := buildStore(storeOpts)
	if err != nil {
		slog.Error("api.Run failed to initialize store", "error", err)
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.Close()

	codec, err := fieldcrypt.NewCodec(cryptoOpts...)
	if err != nil {
		slog.Error("api.Run failed to initialize encryption codec", "error", err)
		return fmt.Errorf("failed to initialize encryption codec: %w", err)
	}

	// A missing API key degrades analysis to the deterministic fallback
	// instead of refusing to start.
	var gen assessment.NarrativeGenerator
	client, err := genai.NewClient(genaiOpts...)
	if err != nil {
		slog.Warn("api.Run narrative generator unavailable, submissions will use fallback analysis", "error", err)
	} else {
		gen = client
	}

	pipeline := assessment.NewPipeline(st, codec, gen)
	server := NewServer(pipeline, catalog.NewBankCache(catalog.DefaultBankTTL), apiOpts...)

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	slog.Info("StabilityPipe API running", "addr", server.addr)
	return http.ListenAndServe(server.addr, mux)
}

// buildStore picks a backend from the configured DSN: Postgres for
// postgres-style DSNs, SQLite for file paths, and in-memory when no DSN is
// configured at all.
func buildStore(opts []store.Option) (store.Store, error) {
	var cfg store.Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Warn("No database DSN configured, using in-memory store; results will not survive restarts")
		return store.NewInMemoryStore(), nil
	}
	switch store.DetectDSNType(cfg.DSN) {
	case "postgres":
		slog.Debug("buildStore selected Postgres backend")
		return store.NewPostgresStore(opts...)
	default:
		slog.Debug("buildStore selected SQLite backend")
		return store.NewSQLiteStore(opts...)
	}
}

// RegisterRoutes attaches the API endpoints to the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/questions", s.questionsHandler)
	mux.HandleFunc("/submit", s.submitHandler)
	mux.HandleFunc("/results", s.resultsHandler)
	mux.HandleFunc("/health", s.healthHandler)
}
