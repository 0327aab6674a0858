// ABOUTME: Report tools: custom reports and standard company reports.
// ABOUTME: Uses the client's per-call query overrides for format switching.

package hrtools

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

var reportFormats = []string{"JSON", "XML", "CSV", "PDF", "XLS"}

// ReportsPack returns the reporting domain tools.
func ReportsPack() tools.Pack {
	return tools.Pack{
		ID: "reports",
		Tools: []tools.Tool{
			{
				Name:        "run_custom_report",
				Description: "Run a custom report with specified fields and filters",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"title": {Type: "string", Description: "Report title"},
						"fields": {
							Type:        "array",
							Items:       &tools.Property{Type: "string"},
							Description: "Field IDs to include in the report",
						},
						"format": {
							Type:        "string",
							Enum:        reportFormats,
							Description: "Report format",
							Default:     "JSON",
						},
						"filters": {Type: "object", Description: `Report filters (e.g., {"status": "Active"})`},
					},
					Required: []string{"fields"},
				},
				Handler: runCustomReport,
			},
			{
				Name:        "list_reports",
				Description: "List all available reports",
				Schema:      tools.Schema{},
				Handler:     listReports,
			},
			{
				Name:        "get_company_report",
				Description: "Get a standard company report by ID",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"report_id": {Type: "string", Description: "Report ID"},
						"format": {
							Type:        "string",
							Enum:        reportFormats,
							Description: "Report format",
							Default:     "JSON",
						},
					},
					Required: []string{"report_id"},
				},
				Handler: getCompanyReport,
			},
		},
	}
}

type customReportInput struct {
	Title   string         `json:"title"`
	Fields  []string       `json:"fields"`
	Format  string         `json:"format"`
	Filters map[string]any `json:"filters"`
}

func runCustomReport(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in customReportInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	title := in.Title
	if title == "" {
		title = "Custom Report"
	}
	format := strings.ToUpper(in.Format)
	if format == "" {
		format = "JSON"
	}

	request := map[string]any{
		"title":  title,
		"fields": in.Fields,
	}
	if in.Filters != nil {
		request["filters"] = in.Filters
	}

	result, err := c.Post(ctx, "/reports/custom", request, url.Values{"format": {format}})
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"report":  result,
		"format":  format,
	}
}

func listReports(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	reports, err := c.Get(ctx, "/reports", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"reports": reports,
		"count":   count(reports),
	}
}

type companyReportInput struct {
	ReportID string `json:"report_id"`
	Format   string `json:"format"`
}

func getCompanyReport(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in companyReportInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	format := strings.ToUpper(in.Format)
	if format == "" {
		format = "JSON"
	}

	report, err := c.Get(ctx, "/reports/"+in.ReportID, url.Values{"format": {format}})
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"report":  report,
		"format":  format,
	}
}
