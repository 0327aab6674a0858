// ABOUTME: Payroll tools: pay stubs, payroll records, and deductions.

package hrtools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// PayrollPack returns the payroll domain tools.
func PayrollPack() tools.Pack {
	return tools.Pack{
		ID: "payroll",
		Tools: []tools.Tool{
			{
				Name:        "list_pay_stubs",
				Description: "List pay stubs for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"start_date":  {Type: "string", Description: "Start date (YYYY-MM-DD)"},
						"end_date":    {Type: "string", Description: "End date (YYYY-MM-DD)"},
					},
					Required: []string{"employee_id"},
				},
				Handler: listPayStubs,
			},
			{
				Name:        "get_payroll_data",
				Description: "Get payroll data for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
					},
					Required: []string{"employee_id"},
				},
				Handler: getPayrollData,
			},
			{
				Name:        "list_payroll_deductions",
				Description: "List payroll deductions for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
					},
					Required: []string{"employee_id"},
				},
				Handler: listPayrollDeductions,
			},
		},
	}
}

type payStubsInput struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func listPayStubs(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in payStubsInput
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

	stubs, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/pay_stubs", query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"pay_stubs":   stubs,
		"count":       count(stubs),
	}
}

func getPayrollData(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in employeeOnlyInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	payroll, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/payroll", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"payroll":     payroll,
	}
}

func listPayrollDeductions(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in employeeOnlyInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	deductions, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/payroll/deductions", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"deductions":  deductions,
		"count":       count(deductions),
	}
}
