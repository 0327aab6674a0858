// ABOUTME: Dispatch engine turning {name, arguments} invocations into result envelopes.
// ABOUTME: Resolves against the registry, invokes handlers, and contains defects.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/2389/bamboo-gateway/internal/bamboo"
)

// Content is one block of a call result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// CallResult is the uniform envelope returned for every invocation. IsError
// marks dispatch-level failures (unknown tool, handler defect); a tool-reported
// failure is a successful dispatch whose payload carries success=false.
type CallResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Recorder receives one record per dispatched invocation. Implementations
// must be safe for concurrent use. See internal/store for the SQLite recorder.
type Recorder interface {
	RecordInvocation(ctx context.Context, tool, requestID string, duration time.Duration, isError bool)
}

// Dispatcher is the single entry point that resolves and runs tools.
type Dispatcher struct {
	registry *Registry
	client   *bamboo.Client
	logger   *slog.Logger
	recorder Recorder // optional
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	Registry *Registry
	Client   *bamboo.Client
	Logger   *slog.Logger
	Recorder Recorder
}

// NewDispatcher creates a Dispatcher over the given registry and shared client.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry: cfg.Registry,
		client:   cfg.Client,
		logger:   logger,
		recorder: cfg.Recorder,
	}
}

// Dispatch resolves name against the registry and invokes the handler with
// the raw argument bag. It never lets a fault escape: an unknown tool or a
// panicking handler both come back as an IsError envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) CallResult {
	requestID := uuid.New().String()
	start := time.Now()

	tool, ok := d.registry.Lookup(name)
	if !ok {
		d.logger.Warn("unknown tool", "tool_name", name, "request_id", requestID)
		result := errorResult(fmt.Sprintf("unknown tool: %s", name))
		d.record(ctx, name, requestID, start, true)
		return result
	}

	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage(`{}`)
	}

	d.logger.Debug("dispatching tool", "tool_name", name, "request_id", requestID)

	result := d.invoke(ctx, tool, args, requestID)
	d.record(ctx, name, requestID, start, result.IsError)

	d.logger.Debug("dispatch complete",
		"tool_name", name,
		"request_id", requestID,
		"is_error", result.IsError,
		"duration", time.Since(start),
	)
	return result
}

// invoke runs the handler with panic containment. A panic is a defect, not a
// classified API error; it is reported through the envelope so callers never
// see an unhandled fault.
func (d *Dispatcher) invoke(ctx context.Context, tool Tool, args json.RawMessage, requestID string) (result CallResult) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool handler panicked",
				"tool_name", tool.Name,
				"request_id", requestID,
				"panic", r,
			)
			result = errorResult(fmt.Sprintf("tool %s failed: %v", tool.Name, r))
		}
	}()

	payload := tool.Handler(ctx, d.client, args)

	text, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// The handler produced an unmarshalable value; that is a defect too.
		d.logger.Error("unmarshalable tool result", "tool_name", tool.Name, "error", err)
		return errorResult(fmt.Sprintf("tool %s produced an invalid result: %v", tool.Name, err))
	}

	return CallResult{Content: []Content{{Type: "text", Text: string(text)}}}
}

func (d *Dispatcher) record(ctx context.Context, tool, requestID string, start time.Time, isError bool) {
	if d.recorder == nil {
		return
	}
	d.recorder.RecordInvocation(ctx, tool, requestID, time.Since(start), isError)
}

func errorResult(msg string) CallResult {
	return CallResult{
		Content: []Content{{Type: "text", Text: msg}},
		IsError: true,
	}
}
