package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("ReadDoc: %v", err)
	}

	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
		Security    map[string]json.RawMessage            `json:"securityDefinitions"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if doc.BasePath != "/api" {
		t.Fatalf("basePath = %q, want /api", doc.BasePath)
	}

	routes := map[string][]string{
		"/admin/access":                     {"post"},
		"/race":                             {"get"},
		"/race/checkpoints":                 {"get"},
		"/admin/race":                       {"post", "delete"},
		"/admin/checkpoints":                {"get", "post"},
		"/admin/checkpoints/{checkpointID}": {"get"},
		"/admin/export":                     {"get", "post"},
		"/version":                          {"get"},
	}
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Fatalf("path %s missing", path)
		}
		for _, m := range methods {
			if _, ok := ops[m]; !ok {
				t.Fatalf("%s %s missing", m, path)
			}
		}
	}
	if len(doc.Paths) != len(routes) {
		t.Fatalf("got %d paths, want %d", len(doc.Paths), len(routes))
	}

	for _, name := range []string{
		"handlers.accessRequest",
		"services.CreateRaceInput",
		"services.AddCheckpointInput",
		"models.EventExport",
		"models.ExportResult",
		"models.ExportTarget",
		"models.Race",
		"models.Checkpoint",
	} {
		if _, ok := doc.Definitions[name]; !ok {
			t.Fatalf("definition %s missing", name)
		}
	}
	if _, ok := doc.Security["OrganizerToken"]; !ok {
		t.Fatal("OrganizerToken security definition missing")
	}
}
