// ABOUTME: Time off tools: requests, policies, types, and balance calculation.
// ABOUTME: Maps onto /time_off and the per-employee time off calculator endpoints.

package hrtools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// TimeOffPack returns the time off domain tools.
func TimeOffPack() tools.Pack {
	return tools.Pack{
		ID: "timeoff",
		Tools: []tools.Tool{
			{
				Name:        "list_time_off_requests",
				Description: "List time off requests with filtering",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"start_date": {Type: "string", Description: "Start date (YYYY-MM-DD)"},
						"end_date":   {Type: "string", Description: "End date (YYYY-MM-DD)"},
						"status": {
							Type:        "string",
							Enum:        []string{"approved", "denied", "superceded", "requested", "canceled"},
							Description: "Filter by status",
						},
						"employee_id": {Type: "string", Description: "Filter by specific employee"},
						"type_id":     {Type: "string", Description: "Filter by time off type ID"},
					},
				},
				Handler: listTimeOffRequests,
			},
			{
				Name:        "get_time_off_request",
				Description: "Get details of a specific time off request",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"request_id": {Type: "string", Description: "Time off request ID"},
					},
					Required: []string{"request_id"},
				},
				Handler: getTimeOffRequest,
			},
			{
				Name:        "create_time_off_request",
				Description: "Create a new time off request",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"type_id":     {Type: "string", Description: "Time off type ID"},
						"start_date":  {Type: "string", Description: "Start date (YYYY-MM-DD)"},
						"end_date":    {Type: "string", Description: "End date (YYYY-MM-DD)"},
						"amount":      {Type: "number", Description: "Amount in hours or days"},
						"notes":       {Type: "string", Description: "Employee notes"},
					},
					Required: []string{"employee_id", "type_id", "start_date", "end_date"},
				},
				Handler: createTimeOffRequest,
			},
			{
				Name:        "update_time_off_request_status",
				Description: "Approve or deny a time off request",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"request_id": {Type: "string", Description: "Time off request ID"},
						"status": {
							Type:        "string",
							Enum:        []string{"approved", "denied", "canceled"},
							Description: "New status",
						},
						"note": {Type: "string", Description: "Manager note"},
					},
					Required: []string{"request_id", "status"},
				},
				Handler: updateTimeOffRequestStatus,
			},
			{
				Name:        "list_time_off_policies",
				Description: "List all time off policies",
				Schema:      tools.Schema{},
				Handler:     listTimeOffPolicies,
			},
			{
				Name:        "get_time_off_balances",
				Description: "Get time off balances for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"as_of_date":  {Type: "string", Description: "Calculate balance as of this date (YYYY-MM-DD)"},
					},
					Required: []string{"employee_id"},
				},
				Handler: getTimeOffBalances,
			},
			{
				Name:        "list_time_off_types",
				Description: "List all time off types",
				Schema:      tools.Schema{},
				Handler:     listTimeOffTypes,
			},
			{
				Name:        "estimate_future_balance",
				Description: "Estimate future time off balance for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"end_date":    {Type: "string", Description: "Future date to estimate balance (YYYY-MM-DD)"},
					},
					Required: []string{"employee_id", "end_date"},
				},
				Handler: estimateFutureBalance,
			},
		},
	}
}

type listTimeOffInput struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status"`
	EmployeeID string `json:"employee_id"`
	TypeID     string `json:"type_id"`
}

func listTimeOffRequests(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in listTimeOffInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	query := url.Values{}
	if in.StartDate != "" {
		query.Set("start", in.StartDate)
	}
	if in.EndDate != "" {
		query.Set("end", in.EndDate)
	}
	if in.Status != "" {
		query.Set("status", in.Status)
	}
	if in.EmployeeID != "" {
		query.Set("employeeId", in.EmployeeID)
	}
	if in.TypeID != "" {
		query.Set("type", in.TypeID)
	}

	requests, err := c.Get(ctx, "/time_off/requests", query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":  true,
		"requests": requests,
		"count":    count(requests),
	}
}

type getTimeOffRequestInput struct {
	RequestID string `json:"request_id"`
}

func getTimeOffRequest(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in getTimeOffRequestInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	request, err := c.Get(ctx, "/time_off/requests/"+in.RequestID, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"request": request,
	}
}

type createTimeOffInput struct {
	EmployeeID string   `json:"employee_id"`
	TypeID     string   `json:"type_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Amount     *float64 `json:"amount"`
	Notes      string   `json:"notes"`
}

func createTimeOffRequest(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in createTimeOffInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	data := map[string]any{
		"employeeId":    in.EmployeeID,
		"timeOffTypeId": in.TypeID,
		"start":         in.StartDate,
		"end":           in.EndDate,
	}
	if in.Amount != nil {
		data["amount"] = *in.Amount
	}
	if in.Notes != "" {
		data["notes"] = in.Notes
	}

	result, err := c.Post(ctx, "/time_off/requests", data, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":    true,
		"request_id": resultID(result),
		"message":    "Time off request created successfully",
	}
}

type updateTimeOffStatusInput struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

func updateTimeOffRequestStatus(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in updateTimeOffStatusInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	data := map[string]any{"status": in.Status}
	if in.Note != "" {
		data["note"] = in.Note
	}

	if _, err := c.Put(ctx, "/time_off/requests/"+in.RequestID+"/status", data, nil); err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Time off request %s successfully", in.Status),
	}
}

func listTimeOffPolicies(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	policies, err := c.Get(ctx, "/time_off/policies", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":  true,
		"policies": policies,
		"count":    count(policies),
	}
}

type balancesInput struct {
	EmployeeID string `json:"employee_id"`
	AsOfDate   string `json:"as_of_date"`
}

func getTimeOffBalances(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in balancesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	var query url.Values
	if in.AsOfDate != "" {
		query = url.Values{"end": {in.AsOfDate}}
	}

	balances, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/time_off/calculator", query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"balances":    balances,
	}
}

func listTimeOffTypes(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	types, err := c.Get(ctx, "/meta/time_off/types", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"types":   types,
		"count":   count(types),
	}
}

type futureBalanceInput struct {
	EmployeeID string `json:"employee_id"`
	EndDate    string `json:"end_date"`
}

func estimateFutureBalance(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in futureBalanceInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	query := url.Values{"end": {in.EndDate}}
	balances, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/time_off/calculator", query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"as_of_date":  in.EndDate,
		"balances":    balances,
	}
}
