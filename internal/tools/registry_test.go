// ABOUTME: Tests for the tool registry
// ABOUTME: Covers insertion order, name collisions, and schema marshaling

package tools

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func namedTool(name, desc string) Tool {
	return Tool{Name: name, Description: desc}
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry(testLogger())
	r.Register(namedTool("charlie", ""))
	r.Register(namedTool("alpha", ""))
	r.Register(namedTool("bravo", ""))

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	want := []string{"charlie", "alpha", "bravo"}
	for i, d := range list {
		if d.Name != want[i] {
			t.Errorf("List()[%d].Name = %q, want %q", i, d.Name, want[i])
		}
	}
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := NewRegistry(testLogger())
	r.Register(namedTool("alpha", "first"))
	r.Register(namedTool("bravo", ""))
	r.Register(namedTool("alpha", "second"))

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}

	tool, ok := r.Lookup("alpha")
	if !ok {
		t.Fatal("Lookup(alpha) not found")
	}
	if tool.Description != "second" {
		t.Errorf("Description = %q, want %q", tool.Description, "second")
	}

	// Overwrite keeps the original listing position.
	list := r.List()
	if list[0].Name != "alpha" || list[1].Name != "bravo" {
		t.Errorf("order after overwrite = [%s %s], want [alpha bravo]", list[0].Name, list[1].Name)
	}
	if list[0].Description != "second" {
		t.Errorf("listed description = %q, want %q", list[0].Description, "second")
	}
}

func TestRegistry_RegisterPack(t *testing.T) {
	r := NewRegistry(testLogger())
	r.RegisterPack(Pack{
		ID:    "demo",
		Tools: []Tool{namedTool("one", ""), namedTool("two", "")},
	})

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if _, ok := r.Lookup("two"); !ok {
		t.Error("Lookup(two) not found")
	}
}

func TestRegistry_LookupMissing(t *testing.T) {
	r := NewRegistry(testLogger())
	if _, ok := r.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) = found, want missing")
	}
}

func TestSchema_MarshalJSON(t *testing.T) {
	t.Run("empty schema", func(t *testing.T) {
		data, err := json.Marshal(Schema{})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		want := `{"type":"object","properties":{}}`
		if string(data) != want {
			t.Errorf("Marshal() = %s, want %s", data, want)
		}
	})

	t.Run("full schema", func(t *testing.T) {
		s := Schema{
			Properties: map[string]Property{
				"status": {Type: "string", Enum: []string{"Active", "Inactive"}, Default: "Active"},
				"ids":    {Type: "array", Items: &Property{Type: "string"}},
			},
			Required: []string{"status"},
		}

		data, err := json.Marshal(s)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if decoded["type"] != "object" {
			t.Errorf("type = %v, want object", decoded["type"])
		}
		props := decoded["properties"].(map[string]any)
		status := props["status"].(map[string]any)
		if status["default"] != "Active" {
			t.Errorf("status.default = %v, want Active", status["default"])
		}
		ids := props["ids"].(map[string]any)
		items := ids["items"].(map[string]any)
		if items["type"] != "string" {
			t.Errorf("ids.items.type = %v, want string", items["type"])
		}
		required := decoded["required"].([]any)
		if len(required) != 1 || required[0] != "status" {
			t.Errorf("required = %v, want [status]", required)
		}
	})
}
