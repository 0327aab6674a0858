// ABOUTME: Employee tools: directory, records, custom fields, and photos.
// ABOUTME: Maps employee operations onto /employees and /meta/fields endpoints.

package hrtools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// EmployeesPack returns the employee domain tools.
func EmployeesPack() tools.Pack {
	return tools.Pack{
		ID: "employees",
		Tools: []tools.Tool{
			{
				Name:        "list_employees",
				Description: "List all employees with basic information",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"status": {
							Type:        "string",
							Enum:        []string{"Active", "Inactive", "All"},
							Description: "Filter by employee status",
							Default:     "Active",
						},
					},
				},
				Handler: listEmployees,
			},
			{
				Name:        "get_employee",
				Description: "Get detailed information about a specific employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"fields": {
							Type:        "array",
							Items:       &tools.Property{Type: "string"},
							Description: "Specific fields to retrieve (optional, returns all if not specified)",
						},
					},
					Required: []string{"employee_id"},
				},
				Handler: getEmployee,
			},
			{
				Name:        "create_employee",
				Description: "Create a new employee record",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"first_name":    {Type: "string", Description: "First name"},
						"last_name":     {Type: "string", Description: "Last name"},
						"email":         {Type: "string", Description: "Work email"},
						"employee_data": {Type: "object", Description: "Additional employee data (job title, department, hire date, etc.)"},
					},
					Required: []string{"first_name", "last_name"},
				},
				Handler: createEmployee,
			},
			{
				Name:        "update_employee",
				Description: "Update employee information",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id":   {Type: "string", Description: "Employee ID"},
						"employee_data": {Type: "object", Description: "Employee data to update"},
					},
					Required: []string{"employee_id", "employee_data"},
				},
				Handler: updateEmployee,
			},
			{
				Name:        "get_employee_directory",
				Description: "Get the employee directory with all fields",
				Schema:      tools.Schema{},
				Handler:     getEmployeeDirectory,
			},
			{
				Name:        "get_custom_fields",
				Description: "Get list of all custom employee fields",
				Schema:      tools.Schema{},
				Handler:     getCustomFields,
			},
			{
				Name:        "get_employee_field_values",
				Description: "Get specific field values for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"field_list": {
							Type:        "array",
							Items:       &tools.Property{Type: "string"},
							Description: "List of field IDs to retrieve",
						},
					},
					Required: []string{"employee_id", "field_list"},
				},
				Handler: getEmployeeFieldValues,
			},
			{
				Name:        "get_employee_photo",
				Description: "Get employee photo",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"size": {
							Type:        "string",
							Enum:        []string{"small", "medium", "large", "original"},
							Description: "Photo size",
							Default:     "medium",
						},
					},
					Required: []string{"employee_id"},
				},
				Handler: getEmployeePhoto,
			},
			{
				Name:        "upload_employee_photo",
				Description: "Upload employee photo",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id":  {Type: "string", Description: "Employee ID"},
						"photo_base64": {Type: "string", Description: "Base64 encoded photo data"},
						"filename":     {Type: "string", Description: "Filename for the photo", Default: "photo.jpg"},
					},
					Required: []string{"employee_id", "photo_base64"},
				},
				Handler: uploadEmployeePhoto,
			},
		},
	}
}

type listEmployeesInput struct {
	Status string `json:"status"`
}

func listEmployees(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in listEmployeesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	directory, err := c.Get(ctx, "/employees/directory", nil)
	if err != nil {
		return tools.Failure(err)
	}

	var employees []any
	if dir, ok := directory.(map[string]any); ok {
		employees, _ = dir["employees"].([]any)
	}

	if in.Status != "" && in.Status != "All" {
		filtered := make([]any, 0, len(employees))
		for _, e := range employees {
			if emp, ok := e.(map[string]any); ok && emp["status"] == in.Status {
				filtered = append(filtered, e)
			}
		}
		employees = filtered
	}

	return map[string]any{
		"success":   true,
		"employees": employees,
		"count":     len(employees),
	}
}

type getEmployeeInput struct {
	EmployeeID string   `json:"employee_id"`
	Fields     []string `json:"fields"`
}

func getEmployee(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in getEmployeeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	var query url.Values
	if len(in.Fields) > 0 {
		query = url.Values{"fields": {strings.Join(in.Fields, ",")}}
	}

	employee, err := c.Get(ctx, "/employees/"+in.EmployeeID, query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":  true,
		"employee": employee,
	}
}

type createEmployeeInput struct {
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	EmployeeData map[string]any `json:"employee_data"`
}

func createEmployee(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in createEmployeeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	data := map[string]any{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
	}
	if in.Email != "" {
		data["workEmail"] = in.Email
	}
	// Caller-supplied extras win over the named fields.
	for k, v := range in.EmployeeData {
		data[k] = v
	}

	result, err := c.Post(ctx, "/employees", data, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": resultID(result),
		"message":     "Employee created successfully",
	}
}

type updateEmployeeInput struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeData map[string]any `json:"employee_data"`
}

func updateEmployee(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in updateEmployeeInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	if _, err := c.Post(ctx, "/employees/"+in.EmployeeID, in.EmployeeData, nil); err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Employee updated successfully",
	}
}

func getEmployeeDirectory(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	directory, err := c.Get(ctx, "/employees/directory", nil)
	if err != nil {
		return tools.Failure(err)
	}

	employeeCount := 0
	if dir, ok := directory.(map[string]any); ok {
		if employees, ok := dir["employees"].([]any); ok {
			employeeCount = len(employees)
		}
	}

	return map[string]any{
		"success":        true,
		"directory":      directory,
		"employee_count": employeeCount,
	}
}

func getCustomFields(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	fields, err := c.Get(ctx, "/meta/fields", nil)
	if err != nil {
		return tools.Failure(err)
	}

	// The endpoint sometimes nests the list under "field".
	if m, ok := fields.(map[string]any); ok {
		if nested, ok := m["field"]; ok {
			fields = nested
		}
	}

	return map[string]any{
		"success": true,
		"fields":  fields,
	}
}

type fieldValuesInput struct {
	EmployeeID string   `json:"employee_id"`
	FieldList  []string `json:"field_list"`
}

func getEmployeeFieldValues(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in fieldValuesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	query := url.Values{"fields": {strings.Join(in.FieldList, ",")}}
	values, err := c.Get(ctx, "/employees/"+in.EmployeeID, query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"values":      values,
	}
}

type getPhotoInput struct {
	EmployeeID string `json:"employee_id"`
	Size       string `json:"size"`
}

func getEmployeePhoto(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in getPhotoInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	size := in.Size
	if size == "" {
		size = "medium"
	}

	photo, err := c.DownloadFile(ctx, "/employees/"+in.EmployeeID+"/photo/"+size, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"photo":   base64.StdEncoding.EncodeToString(photo),
		"size":    size,
	}
}

type uploadPhotoInput struct {
	EmployeeID  string `json:"employee_id"`
	PhotoBase64 string `json:"photo_base64"`
	Filename    string `json:"filename"`
}

func uploadEmployeePhoto(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in uploadPhotoInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	photo, err := base64.StdEncoding.DecodeString(in.PhotoBase64)
	if err != nil {
		return invalidInput(err)
	}

	filename := in.Filename
	if filename == "" {
		filename = "photo.jpg"
	}

	if _, err := c.UploadFile(ctx, "/employees/"+in.EmployeeID+"/photo", photo, filename, false); err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Photo uploaded successfully",
	}
}

// resultID extracts the created-entity ID from a write response, falling back
// to the whole response when the upstream returned something else.
func resultID(result any) any {
	if m, ok := result.(map[string]any); ok {
		if id, ok := m["id"]; ok {
			return id
		}
	}
	return result
}
