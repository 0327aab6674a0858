// ABOUTME: Tool descriptor, handler signature, and parameter schema types.
// ABOUTME: Each tool binds a name and declarative schema to a handler closure.

package tools

import (
	"context"
	"encoding/json"

	"github.com/2389/bamboo-gateway/internal/bamboo"
)

// Handler executes a tool against the shared API client. The input is the
// raw argument bag from the caller; each handler owns its own field
// extraction, defaulting, and type coercion. The returned value is the result
// payload verbatim — handlers report expected failures by returning a
// Failure payload rather than panicking.
type Handler func(ctx context.Context, client *bamboo.Client, input json.RawMessage) any

// Tool is a self-describing invokable unit.
type Tool struct {
	Name        string
	Description string
	Schema      Schema
	Handler     Handler
}

// Pack is a group of tools contributed by one domain module.
type Pack struct {
	ID    string
	Tools []Tool
}

// Descriptor is the capability-listing view of a tool.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// Schema declares the arguments a tool accepts. It is advertised verbatim in
// capability listings; the dispatcher does not enforce it before invocation.
type Schema struct {
	Properties map[string]Property
	Required   []string
}

// Property describes a single schema field.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// MarshalJSON renders the schema as a JSON Schema object. Properties are
// emitted even when empty so every tool advertises `{"type":"object"}`.
func (s Schema) MarshalJSON() ([]byte, error) {
	out := struct {
		Type       string              `json:"type"`
		Properties map[string]Property `json:"properties"`
		Required   []string            `json:"required,omitempty"`
	}{
		Type:       "object",
		Properties: s.Properties,
		Required:   s.Required,
	}
	if out.Properties == nil {
		out.Properties = map[string]Property{}
	}
	return json.Marshal(out)
}

// Failure is the payload shape handlers return for expected errors, most
// commonly a classified API error from the client.
func Failure(err error) map[string]any {
	return map[string]any{
		"success": false,
		"error":   err.Error(),
	}
}
