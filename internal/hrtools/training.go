// ABOUTME: Training tools: employee training records plus category and type metadata.

package hrtools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// TrainingPack returns the training domain tools.
func TrainingPack() tools.Pack {
	return tools.Pack{
		ID: "training",
		Tools: []tools.Tool{
			{
				Name:        "list_training_courses",
				Description: "List training records for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"filter": {
							Type:        "string",
							Enum:        []string{"all", "required", "completed", "incomplete"},
							Description: "Training record filter",
							Default:     "all",
						},
					},
					Required: []string{"employee_id"},
				},
				Handler: listTrainingCourses,
			},
			{
				Name:        "get_training_course",
				Description: "Get details of a specific training record",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"course_id":   {Type: "string", Description: "Training record ID"},
					},
					Required: []string{"employee_id", "course_id"},
				},
				Handler: getTrainingCourse,
			},
			{
				Name:        "create_training_course",
				Description: "Create a training record for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"name":        {Type: "string", Description: "Training name"},
						"description": {Type: "string", Description: "Training description"},
						"category_id": {Type: "string", Description: "Training category ID"},
						"type_id":     {Type: "string", Description: "Training type ID"},
						"required":    {Type: "boolean", Description: "Whether the training is required"},
						"due_date":    {Type: "string", Description: "Due date (YYYY-MM-DD)"},
					},
					Required: []string{"employee_id", "name"},
				},
				Handler: createTrainingCourse,
			},
			{
				Name:        "update_training_course",
				Description: "Update a training record",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"course_id":   {Type: "string", Description: "Training record ID"},
						"course_data": {Type: "object", Description: "Training fields to update"},
					},
					Required: []string{"employee_id", "course_id", "course_data"},
				},
				Handler: updateTrainingCourse,
			},
			{
				Name:        "list_training_categories",
				Description: "List training categories",
				Schema:      tools.Schema{},
				Handler:     listTrainingCategories,
			},
			{
				Name:        "list_training_types",
				Description: "List training types",
				Schema:      tools.Schema{},
				Handler:     listTrainingTypes,
			},
		},
	}
}

type listTrainingInput struct {
	EmployeeID string `json:"employee_id"`
	Filter     string `json:"filter"`
}

func listTrainingCourses(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in listTrainingInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	filter := in.Filter
	if filter == "" {
		filter = "all"
	}

	courses, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/training", url.Values{"filter": {filter}})
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"courses":     courses,
		"count":       count(courses),
	}
}

type trainingRefInput struct {
	EmployeeID string `json:"employee_id"`
	CourseID   string `json:"course_id"`
}

func getTrainingCourse(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in trainingRefInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	course, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/training/"+in.CourseID, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"course":  course,
	}
}

type createTrainingInput struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	TypeID      string `json:"type_id"`
	Required    *bool  `json:"required"`
	DueDate     string `json:"due_date"`
}

func createTrainingCourse(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in createTrainingInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	course := map[string]any{"name": in.Name}
	if in.Description != "" {
		course["description"] = in.Description
	}
	if in.CategoryID != "" {
		course["categoryId"] = in.CategoryID
	}
	if in.TypeID != "" {
		course["typeId"] = in.TypeID
	}
	if in.Required != nil {
		course["required"] = *in.Required
	}
	if in.DueDate != "" {
		course["dueDate"] = in.DueDate
	}

	result, err := c.Post(ctx, "/employees/"+in.EmployeeID+"/training", course, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":   true,
		"message":   "Training record created successfully",
		"course_id": resultID(result),
	}
}

type updateTrainingInput struct {
	EmployeeID string         `json:"employee_id"`
	CourseID   string         `json:"course_id"`
	CourseData map[string]any `json:"course_data"`
}

func updateTrainingCourse(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in updateTrainingInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	_, err := c.Put(ctx, "/employees/"+in.EmployeeID+"/training/"+in.CourseID, in.CourseData, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Training record updated successfully",
	}
}

func listTrainingCategories(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	categories, err := c.Get(ctx, "/meta/training/categories", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":    true,
		"categories": categories,
		"count":      count(categories),
	}
}

func listTrainingTypes(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	types, err := c.Get(ctx, "/meta/training/types", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"types":   types,
		"count":   count(types),
	}
}
