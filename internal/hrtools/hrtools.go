// ABOUTME: Shared helpers for the BambooHR domain tool packs.
// ABOUTME: Input decoding and response-counting utilities used by every pack.

// Package hrtools contains the domain tool packs registered with the tool
// registry at startup: employees, time off, reports, tables, benefits,
// payroll, goals, training, files, and webhooks. Each pack is a thin mapping
// from typed arguments to a REST path plus a reshaping of the JSON response.
// Registration order matters only on a name collision (last pack wins).
package hrtools

import (
	"fmt"

	"github.com/2389/bamboo-gateway/internal/tools"
)

// invalidInput reshapes an argument decoding error into the handler failure
// payload.
func invalidInput(err error) map[string]any {
	return tools.Failure(fmt.Errorf("invalid input: %w", err))
}

// count returns the element count of a decoded JSON array, or zero for any
// other shape.
func count(v any) int {
	if arr, ok := v.([]any); ok {
		return len(arr)
	}
	return 0
}

// Packs returns every domain pack in assembly order.
func Packs() []tools.Pack {
	return []tools.Pack{
		EmployeesPack(),
		TimeOffPack(),
		ReportsPack(),
		TablesPack(),
		BenefitsPack(),
		PayrollPack(),
		GoalsPack(),
		TrainingPack(),
		FilesPack(),
		WebhooksPack(),
	}
}
