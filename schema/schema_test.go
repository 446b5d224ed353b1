package schema

import (
	"encoding/json"
	"io/fs"
	"strings"
	"testing"
)

// TestEmbeddedSchemasAreValidJSON verifies that all embedded schema files are valid JSON.
func TestEmbeddedSchemasAreValidJSON(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(FS, ".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	schemaCount := 0
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".schema.json") {
			continue
		}
		schemaCount++

		t.Run(entry.Name(), func(t *testing.T) {
			t.Parallel()

			data, err := FS.ReadFile(entry.Name())
			if err != nil {
				t.Fatalf("failed to read %s: %v", entry.Name(), err)
			}

			var v interface{}
			if err := json.Unmarshal(data, &v); err != nil {
				t.Errorf("%s is not valid JSON: %v", entry.Name(), err)
			}

			if _, ok := v.(map[string]interface{}); !ok {
				t.Errorf("%s root is not an object", entry.Name())
			}
		})
	}

	if schemaCount == 0 {
		t.Error("no schema files found in embedded FS")
	}
}

// TestSchemaStructure verifies that the config schema covers every section.
func TestSchemaStructure(t *testing.T) {
	t.Parallel()

	data, err := FS.ReadFile("paralog.schema.json")
	if err != nil {
		t.Fatalf("failed to read paralog.schema.json: %v", err)
	}

	var schema struct {
		Schema     string                     `json:"$schema"`
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("failed to parse paralog.schema.json: %v", err)
	}

	if schema.Schema == "" {
		t.Error("paralog.schema.json missing $schema field")
	}
	if schema.Type != "object" {
		t.Errorf("type = %q, want %q", schema.Type, "object")
	}
	for _, section := range []string{"reports", "output"} {
		if _, ok := schema.Properties[section]; !ok {
			t.Errorf("paralog.schema.json missing %q section", section)
		}
	}
}
