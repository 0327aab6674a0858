// ABOUTME: Invocation audit log: one row per tool call with timing and outcome
// ABOUTME: Satisfies the dispatcher's Recorder interface

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Invocation is a single recorded tool call.
type Invocation struct {
	ID        string
	Tool      string
	RequestID string
	Duration  time.Duration
	IsError   bool
	Timestamp time.Time
}

// InvocationFilter specifies filtering options for listing invocations.
type InvocationFilter struct {
	Since *time.Time // entries after this time
	Tool  *string    // filter by tool name
	Limit int        // max results (default 100, max 1000)
}

// RecordInvocation appends a tool call record. Failures are logged, not
// returned, so a broken audit database never fails a tool call.
func (s *SQLiteStore) RecordInvocation(ctx context.Context, tool, requestID string, duration time.Duration, isError bool) {
	query := `
		INSERT INTO invocations (id, tool, request_id, duration_ms, is_error, ts)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New().String(),
		tool,
		requestID,
		duration.Milliseconds(),
		isError,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		s.logger.Error("recording invocation", "tool", tool, "error", err)
		return
	}

	s.logger.Debug("recorded invocation",
		"tool", tool,
		"request_id", requestID,
		"duration_ms", duration.Milliseconds(),
		"is_error", isError,
	)
}

// normalizeLimit applies default (100) and cap (1000) to a list limit.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

const listInvocationsQuery = `
	SELECT id, tool, request_id, duration_ms, is_error, ts
	FROM invocations
	WHERE (? IS NULL OR ts >= ?)
	  AND (? IS NULL OR tool = ?)
	ORDER BY ts DESC
	LIMIT ?
`

// ListInvocations returns invocation records matching the filter,
// newest first.
func (s *SQLiteStore) ListInvocations(ctx context.Context, f InvocationFilter) ([]Invocation, error) {
	limit := normalizeLimit(f.Limit)

	var sinceStr *string
	if f.Since != nil {
		str := f.Since.UTC().Format(time.RFC3339)
		sinceStr = &str
	}

	rows, err := s.db.QueryContext(ctx, listInvocationsQuery,
		sinceStr, sinceStr,
		f.Tool, f.Tool,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Invocation
	for rows.Next() {
		var inv Invocation
		var durationMS int64
		var tsStr string
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.RequestID, &durationMS, &inv.IsError, &tsStr); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		inv.Timestamp, err = time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		entries = append(entries, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invocations: %w", err)
	}

	if entries == nil {
		entries = []Invocation{}
	}
	return entries, nil
}

// CountByTool returns the total invocation count per tool name.
func (s *SQLiteStore) CountByTool(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tool, COUNT(*) FROM invocations GROUP BY tool`)
	if err != nil {
		return nil, fmt.Errorf("counting invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var tool string
		var n int
		if err := rows.Scan(&tool, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[tool] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}
