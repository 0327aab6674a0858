// ABOUTME: Tests for gateway assembly: component wiring, audit store
// ABOUTME: selection, and the health endpoint.

package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/2389/bamboo-gateway/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Bamboo.CompanyDomain = "acme"
	cfg.Bamboo.APIKey = "test-key"
	cfg.Server.HTTPAddr = ":0"
	return cfg
}

func TestNewRegistersAllPacks(t *testing.T) {
	t.Setenv("BAMBOO_GATEWAY_AUDIT_PATH", "")

	gw, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer gw.Shutdown(context.Background())

	if got := gw.Registry().Len(); got != 50 {
		t.Errorf("registry size = %d, want 50", got)
	}
	if gw.auditStore != nil {
		t.Error("audit store opened without a configured path")
	}
}

func TestNewOpensAuditStoreWhenConfigured(t *testing.T) {
	t.Setenv("BAMBOO_GATEWAY_AUDIT_PATH", "")

	cfg := testConfig()
	cfg.Audit.Path = filepath.Join(t.TempDir(), "audit.db")

	gw, err := New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer gw.Shutdown(context.Background())

	if gw.auditStore == nil {
		t.Error("audit store not opened despite configured path")
	}
}

func TestAuditPathEnvOverride(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("BAMBOO_GATEWAY_AUDIT_PATH", envPath)

	cfg := testConfig()
	cfg.Audit.Path = filepath.Join(t.TempDir(), "cfg.db")

	s, err := initAuditStore(cfg)
	if err != nil {
		t.Fatalf("initAuditStore: %v", err)
	}
	if s == nil {
		t.Fatal("store is nil")
	}
	defer s.Close()
}

func TestHealthEndpoint(t *testing.T) {
	t.Setenv("BAMBOO_GATEWAY_AUDIT_PATH", "")

	gw, err := New(testConfig(), testLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer gw.Shutdown(context.Background())

	rec := httptest.NewRecorder()
	gw.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("body = %q, want OK", rec.Body.String())
	}
}
