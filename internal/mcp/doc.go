// Package mcp implements the Model Context Protocol server for external tool access.
//
// # Overview
//
// MCP (Model Context Protocol) is a standard for AI tool integration. This package
// exposes the gateway's BambooHR tools and resources to MCP clients over two
// transports: Streamable HTTP and stdio.
//
// # Protocol
//
// Both transports speak JSON-RPC 2.0. Supported methods:
//
//   - initialize - handshake; the HTTP transport also creates a session
//   - ping - liveness check
//   - tools/list - tool discovery with JSON Schema input descriptors
//   - tools/call - tool execution
//   - resources/list - resource discovery
//   - resources/read - resource retrieval by URI
//
// # HTTP Transport
//
// A single POST /mcp endpoint per the Streamable HTTP spec. The initialize
// response carries an Mcp-Session-Id header; subsequent requests must send it
// back, and DELETE /mcp terminates the session. Server-initiated SSE streams
// are not supported.
//
// # Stdio Transport
//
// StdioServer reads newline-delimited JSON-RPC requests from stdin and writes
// responses to stdout, for running as a subprocess of an MCP client. No
// sessions are involved.
//
// # Tool Execution
//
// Clients call tools/call to execute a tool:
//
//	{
//	  "jsonrpc": "2.0",
//	  "method": "tools/call",
//	  "params": {
//	    "name": "get_employee",
//	    "arguments": {"employee_id": "123"}
//	  },
//	  "id": 2
//	}
//
// The result is a content envelope; tool-reported failures come back as a
// successful dispatch whose JSON payload carries success=false, while dispatch
// faults (unknown tool, handler defect) set isError on the envelope.
//
// # Integration with Claude Desktop
//
// Add to Claude Desktop's MCP configuration:
//
//	{
//	  "mcpServers": {
//	    "bamboohr": {
//	      "url": "http://localhost:8586/mcp"
//	    }
//	  }
//	}
package mcp
