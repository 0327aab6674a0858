// ABOUTME: Benefits tools: plans, enrollments, and dependents.
// ABOUTME: Plan listing filters inactive plans client-side unless asked not to.

package hrtools

import (
	"context"
	"encoding/json"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// BenefitsPack returns the benefits domain tools.
func BenefitsPack() tools.Pack {
	return tools.Pack{
		ID: "benefits",
		Tools: []tools.Tool{
			{
				Name:        "list_benefit_plans",
				Description: "List company benefit plans",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"active_only": {Type: "boolean", Description: "Only return active plans", Default: true},
					},
				},
				Handler: listBenefitPlans,
			},
			{
				Name:        "get_benefit_plan",
				Description: "Get details of a specific benefit plan",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"plan_id": {Type: "string", Description: "Benefit plan ID"},
					},
					Required: []string{"plan_id"},
				},
				Handler: getBenefitPlan,
			},
			{
				Name:        "list_benefit_enrollments",
				Description: "List benefit enrollments for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
					},
					Required: []string{"employee_id"},
				},
				Handler: listBenefitEnrollments,
			},
			{
				Name:        "list_benefit_dependents",
				Description: "List benefit dependents for an employee",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"employee_id": {Type: "string", Description: "Employee ID"},
					},
					Required: []string{"employee_id"},
				},
				Handler: listBenefitDependents,
			},
		},
	}
}

type benefitPlansInput struct {
	ActiveOnly *bool `json:"active_only"`
}

func listBenefitPlans(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in benefitPlansInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	result, err := c.Get(ctx, "/benefits/plans", nil)
	if err != nil {
		return tools.Failure(err)
	}

	plans := result
	// Default is active-only; the upstream endpoint has no filter for it.
	if in.ActiveOnly == nil || *in.ActiveOnly {
		if list, ok := result.([]any); ok {
			active := make([]any, 0, len(list))
			for _, p := range list {
				if m, ok := p.(map[string]any); ok {
					if v, ok := m["active"].(bool); ok && !v {
						continue
					}
				}
				active = append(active, p)
			}
			plans = active
		}
	}

	return map[string]any{
		"success": true,
		"plans":   plans,
		"count":   count(plans),
	}
}

type benefitPlanInput struct {
	PlanID string `json:"plan_id"`
}

func getBenefitPlan(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in benefitPlanInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	plan, err := c.Get(ctx, "/benefits/plans/"+in.PlanID, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"plan":    plan,
	}
}

type employeeOnlyInput struct {
	EmployeeID string `json:"employee_id"`
}

func listBenefitEnrollments(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in employeeOnlyInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	enrollments, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/benefits/enrollments", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"enrollments": enrollments,
		"count":       count(enrollments),
	}
}

func listBenefitDependents(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in employeeOnlyInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	dependents, err := c.Get(ctx, "/employees/"+in.EmployeeID+"/benefits/dependents", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":     true,
		"employee_id": in.EmployeeID,
		"dependents":  dependents,
		"count":       count(dependents),
	}
}
