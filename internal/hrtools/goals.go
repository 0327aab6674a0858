// ABOUTME: Goal tools: employee goals, status changes, and comments.

package hrtools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// GoalsPack returns the goals domain tools.
func GoalsPack() tools.Pack {
	return tools.Pack{
		ID: "goals",
		Tools: []tools.Tool{
			{
				Name:        "list_goals",
				Description: "List goals for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"filter": {
							Type:        "string",
							Enum:        []string{"all", "active", "completed"},
							Description: "Goal status filter",
							Default:     "all",
						},
					},
					Required: []string{"employee_id"},
				},
				Handler: listGoals,
			},
			{
				Name:        "get_goal",
				Description: "Get details of a specific goal",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"goal_id":     {Type: "string", Description: "Goal ID"},
					},
					Required: []string{"employee_id", "goal_id"},
				},
				Handler: getGoal,
			},
			{
				Name:        "create_goal",
				Description: "Create a goal for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"title":       {Type: "string", Description: "Goal title"},
						"description": {Type: "string", Description: "Goal description"},
						"due_date":    {Type: "string", Description: "Due date (YYYY-MM-DD)"},
						"shared_with_employee_ids": {
							Type:        "array",
							Items:       &tools.Property{Type: "string"},
							Description: "Employee IDs the goal is shared with",
						},
					},
					Required: []string{"employee_id", "title"},
				},
				Handler: createGoal,
			},
			{
				Name:        "update_goal",
				Description: "Update an existing goal",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"goal_id":     {Type: "string", Description: "Goal ID"},
						"goal_data":   {Type: "object", Description: "Goal fields to update"},
					},
					Required: []string{"employee_id", "goal_id", "goal_data"},
				},
				Handler: updateGoal,
			},
			{
				Name:        "close_goal",
				Description: "Close a goal, optionally setting its completion percentage",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id":      {Type: "string", Description: "Employee ID"},
						"goal_id":          {Type: "string", Description: "Goal ID"},
						"percent_complete": {Type: "number", Description: "Completion percentage", Default: 100},
					},
					Required: []string{"employee_id", "goal_id"},
				},
				Handler: closeGoal,
			},
			{
				Name:        "list_goal_comments",
				Description: "List comments on a goal",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
						"goal_id":     {Type: "string", Description: "Goal ID"},
					},
					Required: []string{"employee_id", "goal_id"},
				},
				Handler: listGoalComments,
			},
		},
	}
}

type listGoalsInput struct {
	EmployeeID string `json:"employee_id"`
	Filter     string `json:"filter"`
}

func listGoals(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in listGoalsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	filter := in.Filter
	if filter == "" {
		filter = "all"
	}

	goals, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/goals", url.Values{"filter": {filter}})
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"goals":       goals,
		"count":       count(goals),
	}
}

type goalRefInput struct {
	EmployeeID string `json:"employee_id"`
	GoalID     string `json:"goal_id"`
}

func getGoal(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in goalRefInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	goal, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/goals/"+in.GoalID, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"goal":    goal,
	}
}

type createGoalInput struct {
	EmployeeID            string   `json:"employee_id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	DueDate               string   `json:"due_date"`
	SharedWithEmployeeIDs []string `json:"shared_with_employee_ids"`
}

func createGoal(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in createGoalInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	goal := map[string]any{"title": in.Title}
	if in.Description != "" {
		goal["description"] = in.Description
	}
	if in.DueDate != "" {
		goal["dueDate"] = in.DueDate
	}
	if len(in.SharedWithEmployeeIDs) > 0 {
		goal["sharedWithEmployeeIds"] = in.SharedWithEmployeeIDs
	}

	result, err := c.Post(ctx, "/employees/"+in.EmployeeID+"/goals", goal, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Goal created successfully",
		"goal_id": resultID(result),
	}
}

type updateGoalInput struct {
	EmployeeID string         `json:"employee_id"`
	GoalID     string         `json:"goal_id"`
	GoalData   map[string]any `json:"goal_data"`
}

func updateGoal(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in updateGoalInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	_, err := c.Put(ctx, "/employees/"+in.EmployeeID+"/goals/"+in.GoalID, in.GoalData, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Goal updated successfully",
	}
}

type closeGoalInput struct {
	EmployeeID      string   `json:"employee_id"`
	GoalID          string   `json:"goal_id"`
	PercentComplete *float64 `json:"percent_complete"`
}

func closeGoal(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in closeGoalInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	percent := 100.0
	if in.PercentComplete != nil {
		percent = *in.PercentComplete
	}

	_, err := c.Put(ctx, "/employees/"+in.EmployeeID+"/goals/"+in.GoalID+"/close",
		map[string]any{"percentComplete": percent}, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Goal closed successfully",
	}
}

func listGoalComments(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in goalRefInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	comments, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/goals/"+in.GoalID+"/comments", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":  true,
		"comments": comments,
		"count":    count(comments),
	}
}
