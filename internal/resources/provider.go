// ABOUTME: Fixed-URI read-only resource provider backed by canned gateway reads.
// ABOUTME: Exposes the employee directory and time off request snapshots.

package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/2389/bamboo-gateway/internal/bamboo"
)

// ErrNotFound indicates the requested URI is outside the fixed vocabulary.
// Distinct from the dispatcher's unknown-tool condition.
var ErrNotFound = errors.New("resource not found")

// Resource URIs. The vocabulary is fixed; there is no dynamic registration.
const (
	URIEmployees = "bamboohr://employees"
	URITimeOff   = "bamboohr://time-off"
)

// Resource describes one readable view for capability listings.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// Content is one block of a read result.
type Content struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// ReadResult wraps the contents returned for a resource read.
type ReadResult struct {
	Contents []Content `json:"contents"`
}

// Provider maps the fixed URI vocabulary to gateway reads. It holds no state
// of its own beyond the shared client.
type Provider struct {
	client *bamboo.Client
	logger *slog.Logger
}

// NewProvider creates a Provider over the shared client.
func NewProvider(client *bamboo.Client, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{client: client, logger: logger}
}

// List returns the fixed resource descriptors.
func (p *Provider) List() []Resource {
	return []Resource{
		{
			URI:         URIEmployees,
			Name:        "Employee Directory",
			Description: "All employees in the company directory",
			MimeType:    "application/json",
		},
		{
			URI:         URITimeOff,
			Name:        "Time Off Requests",
			Description: "All time off requests and balances",
			MimeType:    "application/json",
		},
	}
}

// Read resolves a URI to its canned gateway read. Unknown URIs return
// ErrNotFound; upstream failures propagate as classified API errors.
func (p *Provider) Read(ctx context.Context, uri string) (*ReadResult, error) {
	var path string
	switch uri {
	case URIEmployees:
		path = "/employees/directory"
	case URITimeOff:
		path = "/time_off/requests"
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}

	data, err := p.client.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding resource %s: %w", uri, err)
	}

	p.logger.Debug("resource read", "uri", uri)
	return &ReadResult{
		Contents: []Content{{URI: uri, MimeType: "application/json", Text: string(text)}},
	}, nil
}
