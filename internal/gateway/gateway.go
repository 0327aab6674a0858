// ABOUTME: Gateway orchestrator wiring client, registry, dispatcher, and transports
// ABOUTME: Manages the HTTP server, optional audit store, and shutdown lifecycle

package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/config"
	"github.com/2389/bamboo-gateway/internal/hrtools"
	"github.com/2389/bamboo-gateway/internal/mcp"
	"github.com/2389/bamboo-gateway/internal/resources"
	"github.com/2389/bamboo-gateway/internal/store"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// Gateway orchestrates the bamboo-gateway server components: the upstream
// API client, the tool registry and dispatcher, the resource provider, and
// the MCP transport in front of them.
type Gateway struct {
	config     *config.Config
	client     *bamboo.Client
	registry   *tools.Registry
	dispatcher *tools.Dispatcher
	resources  *resources.Provider
	mcpServer  *mcp.Server
	httpServer *http.Server
	auditStore *store.SQLiteStore
	logger     *slog.Logger
}

// initAuditStore opens the invocation audit database if configured.
// Returns a nil store when auditing is disabled.
func initAuditStore(cfg *config.Config) (*store.SQLiteStore, error) {
	dbPath := cfg.Audit.Path
	if envPath := os.Getenv("BAMBOO_GATEWAY_AUDIT_PATH"); envPath != "" {
		dbPath = envPath
	}
	if dbPath == "" {
		return nil, nil
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing audit store: %w", err)
	}
	return s, nil
}

// New creates a new Gateway instance with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	client, err := bamboo.New(bamboo.Config{
		CompanyDomain: cfg.Bamboo.CompanyDomain,
		APIKey:        cfg.Bamboo.APIKey,
		Timeout:       cfg.Bamboo.Timeout,
		Logger:        logger.With("component", "bamboo"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	auditStore, err := initAuditStore(cfg)
	if err != nil {
		return nil, err
	}

	registry := tools.NewRegistry(logger.With("component", "registry"))
	for _, pack := range hrtools.Packs() {
		registry.RegisterPack(pack)
	}

	var recorder tools.Recorder
	if auditStore != nil {
		recorder = auditStore
	}

	dispatcher := tools.NewDispatcher(tools.DispatcherConfig{
		Registry: registry,
		Client:   client,
		Logger:   logger.With("component", "dispatcher"),
		Recorder: recorder,
	})

	provider := resources.NewProvider(client, logger.With("component", "resources"))

	mcpServer, err := mcp.NewServer(mcp.Config{
		Registry:   registry,
		Dispatcher: dispatcher,
		Resources:  provider,
		Logger:     logger.With("component", "mcp"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating MCP server: %w", err)
	}

	gw := &Gateway{
		config:     cfg,
		client:     client,
		registry:   registry,
		dispatcher: dispatcher,
		resources:  provider,
		mcpServer:  mcpServer,
		auditStore: auditStore,
		logger:     logger.With("component", "gateway"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", gw.handleHealth)
	mcpServer.RegisterRoutes(mux)

	gw.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return gw, nil
}

// Registry exposes the assembled tool registry, mainly for the tools
// listing command.
func (g *Gateway) Registry() *tools.Registry {
	return g.registry
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown (context canceled), or an error if the
// server fails.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String(), "tools", g.registry.Len())
		if err := g.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		g.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := g.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// RunStdio serves MCP over stdin/stdout and blocks until input is exhausted
// or the context is canceled.
func (g *Gateway) RunStdio(ctx context.Context) error {
	g.logger.Info("serving MCP over stdio", "tools", g.registry.Len())

	stdio := mcp.NewStdioServer(g.mcpServer)
	serveErr := stdio.Serve(ctx, os.Stdin, os.Stdout)

	if closeErr := g.closeAuditStore(); closeErr != nil && serveErr == nil {
		return closeErr
	}
	return serveErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// Shutdown gracefully stops the HTTP server and releases resources.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("shutting down gateway")

	var errs []error
	if err := g.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if err := g.closeAuditStore(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}

func (g *Gateway) closeAuditStore() error {
	if g.auditStore == nil {
		return nil
	}
	if err := g.auditStore.Close(); err != nil {
		return fmt.Errorf("audit store close: %w", err)
	}
	return nil
}

// handleHealth returns 200 OK if the server is alive.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
