// ABOUTME: Webhook tools: list, create, and delete account webhooks.

package hrtools

import (
	"context"
	"encoding/json"

	"github.com/2389/bamboo-gateway/internal/bamboo"
	"github.com/2389/bamboo-gateway/internal/tools"
)

// WebhooksPack returns the webhook domain tools.
func WebhooksPack() tools.Pack {
	return tools.Pack{
		ID: "webhooks",
		Tools: []tools.Tool{
			{
				Name:        "list_webhooks",
				Description: "List configured webhooks",
				Schema:      tools.Schema{},
				Handler:     listWebhooks,
			},
			{
				Name:        "create_webhook",
				Description: "Create a webhook",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"name": {Type: "string", Description: "Webhook name"},
						"url":  {Type: "string", Description: "Webhook target URL"},
						"format": {
							Type:        "string",
							Enum:        []string{"json", "form"},
							Description: "Payload format",
							Default:     "json",
						},
						"frequency": {
							Type:        "string",
							Enum:        []string{"realtime", "daily", "weekly"},
							Description: "Delivery frequency",
							Default:     "realtime",
						},
						"post_fields": {
							Type:        "array",
							Items:       &tools.Property{Type: "string"},
							Description: "Fields to include in the webhook payload",
						},
						"limit": {Type: "number", Description: "Maximum records per delivery"},
					},
					Required: []string{"name", "url"},
				},
				Handler: createWebhook,
			},
			{
				Name:        "delete_webhook",
				Description: "Delete a webhook",
				Schema: tools.Schema{
					Properties: map[string]tools.Property{
						"webhook_id": {Type: "string", Description: "Webhook ID"},
					},
					Required: []string{"webhook_id"},
				},
				Handler: deleteWebhook,
			},
		},
	}
}

func listWebhooks(ctx context.Context, c *bamboo.Client, _ json.RawMessage) any {
	webhooks, err := c.Get(ctx, "/webhooks", nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":  true,
		"webhooks": webhooks,
		"count":    count(webhooks),
	}
}

type createWebhookInput struct {
	Name       string   `json:"name"`
	URL        string   `json:"url"`
	Format     string   `json:"format"`
	Frequency  string   `json:"frequency"`
	PostFields []string `json:"post_fields"`
	Limit      *float64 `json:"limit"`
}

func createWebhook(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in createWebhookInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	format := in.Format
	if format == "" {
		format = "json"
	}
	frequency := in.Frequency
	if frequency == "" {
		frequency = "realtime"
	}

	webhook := map[string]any{
		"name":      in.Name,
		"url":       in.URL,
		"format":    format,
		"frequency": frequency,
	}
	if in.PostFields != nil {
		webhook["postFields"] = in.PostFields
	}
	if in.Limit != nil {
		webhook["limit"] = *in.Limit
	}

	result, err := c.Post(ctx, "/webhooks", webhook, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success":    true,
		"message":    "Webhook created successfully",
		"webhook_id": resultID(result),
	}
}

type deleteWebhookInput struct {
	WebhookID string `json:"webhook_id"`
}

func deleteWebhook(ctx context.Context, c *bamboo.Client, input json.RawMessage) any {
	var in deleteWebhookInput
	if err := json.Unmarshal(input, &in); err != nil {
		return invalidInput(err)
	}

	_, err := c.Delete(ctx, "/webhooks/"+in.WebhookID, nil)
	if err != nil {
		return tools.Failure(err)
	}

	return map[string]any{
		"success": true,
		"message": "Webhook deleted successfully",
	}
}
