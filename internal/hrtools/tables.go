// ABOUTME: Employee table tools: table metadata, rows, and row mutations.
// ABOUTME: Table rows live under /employees/{id}/tables/{table}.

package hrtools

import (
	"context"
	"encoding/json"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// TablesPack returns the employee table domain tools.
func TablesPack() tools.Pack {
	return tools.Pack{
		ID: "tables",
		Tools: []tools.Tool{
			{
				Name:        "list_tables",
				Description: "List all available employee tables",
				Schema:      tools.Schema{},
				Handler:     listTables,
			},
			{
				Name:        "get_table_rows",
				Description: "Get rows from an employee table (e.g., jobInfo, compensation, employmentStatus)",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"table_name":  {Type: "string", Description: "Table name (e.g., jobInfo, compensation)"},
					},
					Required: []string{"employee_id", "table_name"},
				},
				Handler: getTableRows,
			},
			{
				Name:        "add_table_row",
				Description: "Add a row to an employee table",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"table_name":  {Type: "string", Description: "Table name"},
						"row_data":    {Type: "object", Description: "Row data as field-value pairs"},
					},
					Required: []string{"employee_id", "table_name", "row_data"},
				},
				Handler: addTableRow,
			},
			{
				Name:        "update_table_row",
				Description: "Update a row in an employee table",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"table_name":  {Type: "string", Description: "Table name"},
						"row_id":      {Type: "string", Description: "Row ID"},
						"row_data":    {Type: "object", Description: "Updated row data as field-value pairs"},
					},
					Required: []string{"employee_id", "table_name", "row_id", "row_data"},
				},
				Handler: updateTableRow,
			},
		},
	}
}

func listTables(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	tbls, err := c.Get(ctx, "/meta/tables", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"tables":  tbls,
		"count":   count(tbls),
	}
}

type tableRowsInput struct {
	EmployeeID string `json:"employee_id"`
	TableName  string `json:"table_name"`
}

func getTableRows(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in tableRowsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	rows, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/tables/"+in.TableName, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"table_name":  in.TableName,
		"rows":        rows,
		"count":       count(rows),
	}
}

type addTableRowInput struct {
	EmployeeID string         `json:"employee_id"`
	TableName  string         `json:"table_name"`
	RowData    map[string]any `json:"row_data"`
}

func addTableRow(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in addTableRowInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	result, err := c.Post(ctx, "/employees/"+in.EmployeeID+"/tables/"+in.TableName, in.RowData, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Table row added successfully",
		"row_id":  resultID(result),
	}
}

type updateTableRowInput struct {
	EmployeeID string         `json:"employee_id"`
	TableName  string         `json:"table_name"`
	RowID      string         `json:"row_id"`
	RowData    map[string]any `json:"row_data"`
}

func updateTableRow(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in updateTableRowInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	_, err := c.Post(ctx, "/employees/"+in.EmployeeID+"/tables/"+in.TableName+"/"+in.RowID, in.RowData, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Table row updated successfully",
	}
}
