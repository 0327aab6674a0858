// ABOUTME: Tests for the reports pack: custom report defaults and the
// ABOUTME: format query parameter.

package hrtools

import (
	"context"
	"encoding/json"
	"testing"
)

func TestRunCustomReportDefaults(t *testing.T) {
	client, captured := newTestClient(t, 200, `{"title":"Custom Report"}`)

	input := json.RawMessage(`{"fields":["firstName","lastName"]}`)
	result := asMap(t, runCustomReport(context.Background(), client, input))

	if captured.Method != "POST" || captured.Path != "/reports/custom" {
		t.Errorf("request = %s %s, want POST /reports/custom", captured.Method, captured.Path)
	}
	if captured.Query != "format=JSON" {
		t.Errorf("query = %q, want format=JSON", captured.Query)
	}

	var body map[string]any
	if err := json.Unmarshal(captured.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["title"] != "Custom Report" {
		t.Errorf("title = %v, want default", body["title"])
	}
	if _, hasFilters := body["filters"]; hasFilters {
		t.Error("filters present in body, want omitted when unset")
	}

	if result["format"] != "JSON" {
		t.Errorf("format = %v, want JSON", result["format"])
	}
}

func TestRunCustomReportUppercasesFormat(t *testing.T) {
	client, captured := newTestClient(t, 200, `{}`)

	input := json.RawMessage(`{"fields":["id"],"format":"csv","title":"Headcount"}`)
	result := asMap(t, runCustomReport(context.Background(), client, input))

	if captured.Query != "format=CSV" {
		t.Errorf("query = %q, want format=CSV", captured.Query)
	}
	if result["format"] != "CSV" {
		t.Errorf("format = %v, want CSV", result["format"])
	}

	var body map[string]any
	if err := json.Unmarshal(captured.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["title"] != "Headcount" {
		t.Errorf("title = %v, want Headcount", body["title"])
	}
}

func TestGetCompanyReport(t *testing.T) {
	client, captured := newTestClient(t, 200, `{"rows":[]}`)

	input := json.RawMessage(`{"report_id":"123"}`)
	result := asMap(t, getCompanyReport(context.Background(), client, input))

	if captured.Path != "/reports/123" {
		t.Errorf("path = %q, want /reports/123", captured.Path)
	}
	if result["success"] != true {
		t.Fatalf("result = %v, want success", result)
	}
}
