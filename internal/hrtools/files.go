// ABOUTME: File tools: employee document listings, downloads, and uploads.
// ABOUTME: Binary content crosses the tool boundary as base64 text.

package hrtools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/url"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// FilesPack returns the employee file domain tools.
func FilesPack() tools.Pack {
	return tools.Pack{
		ID: "files",
		Tools: []tools.Tool{
			{
				Name:        "list_employee_files",
				Description: "List files attached to an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"category_id": {Type: "string", Description: "Filter by file category ID"},
					},
					Required: []string{"employee_id"},
				},
				Handler: listEmployeeFiles,
			},
			{
				Name:        "get_employee_file",
				Description: "Download an employee file (returned as base64)",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"file_id":     {Type: "string", Description: "File ID"},
					},
					Required: []string{"employee_id", "file_id"},
				},
				Handler: getEmployeeFile,
			},
			{
				Name:        "upload_employee_file",
				Description: "Upload a file to an employee record (base64 encoded content)",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id":         {Type: "string", Description: "Employee ID"},
						"file_base64":         {Type: "string", Description: "File content, base64 encoded"},
						"filename":            {Type: "string", Description: "File name"},
						"category_id":         {Type: "string", Description: "File category ID"},
						"share_with_employee": {Type: "boolean", Description: "Share the file with the employee", Default: false},
					},
					Required: []string{"employee_id", "file_base64", "filename"},
				},
				Handler: uploadEmployeeFile,
			},
			{
				Name:        "list_file_categories",
				Description: "List employee file categories",
				Schema:      tools.Schema{},
				Handler:     listFileCategories,
			},
		},
	}
}

type listFilesInput struct {
	EmployeeID string `json:"employee_id"`
	CategoryID string `json:"category_id"`
}

func listEmployeeFiles(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in listFilesInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	query := url.Values{}
	if in.CategoryID != "" {
		query.Set("categoryId", in.CategoryID)
	}

	files, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/files", query)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"files":       files,
		"count":       count(files),
	}
}

type fileRefInput struct {
	EmployeeID string `json:"employee_id"`
	FileID     string `json:"file_id"`
}

func getEmployeeFile(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in fileRefInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	data, err := c.DownloadFile(ctx, "/employees/"+in.EmployeeID+"/files/"+in.FileID, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":   true,
		"file_id":   in.FileID,
		"file_data": base64.StdEncoding.EncodeToString(data),
		"message":   "File downloaded successfully (base64 encoded)",
	}
}

type uploadFileInput struct {
	EmployeeID        string `json:"employee_id"`
	FileBase64        string `json:"file_base64"`
	Filename          string `json:"filename"`
	CategoryID        string `json:"category_id"`
	ShareWithEmployee bool   `json:"share_with_employee"`
}

func uploadEmployeeFile(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in uploadFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	data, err := base64.StdEncoding.DecodeString(in.FileBase64)
	if err != nil {
		return invalidInput(err)
	}

	result, err := c.UploadFile(ctx, "/employees/"+in.EmployeeID+"/files/"+in.CategoryID,
		data, in.Filename, in.ShareWithEmployee)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "File uploaded successfully",
		"file_id": resultID(result),
	}
}

func listFileCategories(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	categories, err := c.Get(ctx, "/meta/files/categories", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":    true,
		"categories": categories,
		"count":      count(categories),
	}
}
