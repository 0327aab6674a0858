// ABOUTME: Tests for the time off pack: request listing filters, creation
// ABOUTME: body mapping, and status transitions.

package hrtools

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
)

func TestListTimeOffRequestsQueryMapping(t *testing.T) {
	client, captured := newTestClient(t, 200, `[{"id":"1"}]`)

	input := json.RawMessage(`{
		"start_date": "2026-01-01",
		"end_date": "2026-01-31",
		"status": "approved",
		"employee_id": "42",
		"type_id": "2"
	}`)
	result := asMap(t, listTimeOffRequests(context.Background(), client, input))

	if captured.Path != "/time_off/requests" {
		t.Errorf("path = %q, want /time_off/requests", captured.Path)
	}

	query, err := url.ParseQuery(captured.Query)
	if err != nil {
		t.Fatalf("parsing query: %v", err)
	}
	want := map[string]string{
		"start":      "2026-01-01",
		"end":        "2026-01-31",
		"status":     "approved",
		"employeeId": "42",
		"type":       "2",
	}
	for k, v := range want {
		if query.Get(k) != v {
			t.Errorf("query[%q] = %q, want %q", k, query.Get(k), v)
		}
	}

	if result["count"] != 1 {
		t.Errorf("count = %v, want 1", result["count"])
	}
}

func TestListTimeOffRequestsOmitsUnsetFilters(t *testing.T) {
	client, captured := newTestClient(t, 200, `[]`)

	asMap(t, listTimeOffRequests(context.Background(), client, json.RawMessage(`{}`)))
	if captured.Query != "" {
		t.Errorf("query = %q, want empty", captured.Query)
	}
}

func TestCreateTimeOffRequestBodyMapping(t *testing.T) {
	client, captured := newTestClient(t, 200, `{"id":"314"}`)

	input := json.RawMessage(`{
		"employee_id": "42",
		"type_id": "2",
		"start_date": "2026-03-02",
		"end_date": "2026-03-06",
		"amount": 5,
		"notes": "spring break"
	}`)
	result := asMap(t, createTimeOffRequest(context.Background(), client, input))

	if captured.Method != "POST" || captured.Path != "/time_off/requests" {
		t.Errorf("request = %s %s, want POST /time_off/requests", captured.Method, captured.Path)
	}

	var body map[string]any
	if err := json.Unmarshal(captured.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["employeeId"] != "42" || body["timeOffTypeId"] != "2" {
		t.Errorf("body ids = %v/%v", body["employeeId"], body["timeOffTypeId"])
	}
	if body["amount"] != float64(5) {
		t.Errorf("amount = %v, want 5", body["amount"])
	}
	if body["notes"] != "spring break" {
		t.Errorf("notes = %v", body["notes"])
	}

	if result["request_id"] != "314" {
		t.Errorf("request_id = %v, want 314", result["request_id"])
	}
}

func TestCreateTimeOffRequestOmitsOptionalFields(t *testing.T) {
	client, captured := newTestClient(t, 200, `{"id":"1"}`)

	input := json.RawMessage(`{"employee_id":"42","type_id":"2","start_date":"2026-03-02","end_date":"2026-03-02"}`)
	asMap(t, createTimeOffRequest(context.Background(), client, input))

	var body map[string]any
	if err := json.Unmarshal(captured.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if _, ok := body["amount"]; ok {
		t.Error("amount present, want omitted")
	}
	if _, ok := body["notes"]; ok {
		t.Error("notes present, want omitted")
	}
}

func TestUpdateTimeOffRequestStatus(t *testing.T) {
	client, captured := newTestClient(t, 200, ``)

	input := json.RawMessage(`{"request_id":"314","status":"approved","note":"enjoy"}`)
	result := asMap(t, updateTimeOffRequestStatus(context.Background(), client, input))

	if captured.Method != "PUT" || captured.Path != "/time_off/requests/314/status" {
		t.Errorf("request = %s %s, want PUT /time_off/requests/314/status", captured.Method, captured.Path)
	}

	var body map[string]any
	if err := json.Unmarshal(captured.Body, &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "approved" || body["note"] != "enjoy" {
		t.Errorf("body = %v", body)
	}

	if result["message"] != "Time off request approved successfully" {
		t.Errorf("message = %v", result["message"])
	}
}

func TestGetTimeOffBalances(t *testing.T) {
	client, captured := newTestClient(t, 200, `[{"timeOffType":"1","balance":"10"}]`)

	input := json.RawMessage(`{"employee_id":"42","as_of_date":"2026-12-31"}`)
	result := asMap(t, getTimeOffBalances(context.Background(), client, input))

	if captured.Path != "/employees/42/time_off/calculator" {
		t.Errorf("path = %q, want /employees/42/time_off/calculator", captured.Path)
	}
	if captured.Query != "end=2026-12-31" {
		t.Errorf("query = %q, want end=2026-12-31", captured.Query)
	}
	if result["success"] != true {
		t.Fatalf("result = %v, want success", result)
	}
}
