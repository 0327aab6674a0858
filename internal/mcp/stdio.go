// ABOUTME: Stdio transport: newline-delimited JSON-RPC over stdin/stdout.
// ABOUTME: Shares method handling with the HTTP server; no sessions required.

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// StdioServer serves MCP over a newline-delimited JSON-RPC stream, typically
// stdin/stdout when the gateway runs as a subprocess of an MCP client.
type StdioServer struct {
	inner  *Server
	logger *slog.Logger
}

// NewStdioServer wraps an existing Server for stdio transport.
func NewStdioServer(inner *Server) *StdioServer {
	return &StdioServer{
		inner:  inner,
		logger: inner.logger.With("transport", "stdio"),
	}
}

// Serve reads JSON-RPC requests line by line from r and writes responses to w
// until r is exhausted or ctx is cancelled. Notifications get no response.
// Malformed lines produce a parse error response rather than ending the loop.
func (s *StdioServer) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRequestBodySize)
	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.logger.Warn("invalid JSON-RPC line", "error", err)
			if err := encoder.Encode(errorResponse(nil, JSONRPCParseError, "invalid JSON")); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			continue
		}

		if req.JSONRPC != "2.0" {
			if err := encoder.Encode(errorResponse(req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version")); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			continue
		}

		// Notifications are accepted silently.
		if len(req.ID) == 0 || string(req.ID) == "null" {
			s.logger.Debug("accepted notification", "method", req.Method)
			continue
		}

		resp := s.inner.HandleMethod(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}
