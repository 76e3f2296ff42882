package beadwork

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planforge/planforge/models"
)

// DefaultSchemaDir is where acceptance schemas land when no directory is
// configured.
const DefaultSchemaDir = ".planforge/schemas"

// EmitSchema produces the acceptance schema for a work item: a JSON-Schema
// document declaring the minimum test counts, the exact contract check
// strings the implementer must demonstrate, and the boolean completion
// gates. Counts come from the task's declared scenarios after defaulting,
// so a minimal task still yields an enforceable schema.
func EmitSchema(task models.Task, beadID string) ([]byte, error) {
	p := task.Payload.WithDefaults()

	schema := map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       fmt.Sprintf("Acceptance schema for %s", beadID),
		"description": fmt.Sprintf("Proof-of-completion requirements for task %s", task.ID),
		"type":        "object",
		"required":    []string{"tests", "contracts", "gates"},
		"properties": map[string]any{
			"tests": map[string]any{
				"type":     "object",
				"required": []string{"happy_path", "error_path"},
				"properties": map[string]any{
					"happy_path": testNameArray(len(p.Tests.HappyPath)),
					"error_path": testNameArray(len(p.Tests.ErrorPath)),
					"edge_cases": testNameArray(0),
				},
			},
			"contracts": map[string]any{
				"type":     "object",
				"required": []string{"preconditions_checked", "postconditions_checked", "invariants_checked"},
				"properties": map[string]any{
					"preconditions_checked":  checkArray(p.Contracts.Preconditions),
					"postconditions_checked": checkArray(p.Contracts.Postconditions),
					"invariants_checked":     checkArray(p.Contracts.Invariants),
				},
			},
			"gates": map[string]any{
				"type":     "object",
				"required": []string{"implementation_exists", "tests_exist", "ci_passing", "no_unsafe_unwraps"},
				"properties": map[string]any{
					"implementation_exists": map[string]any{"const": true},
					"tests_exist":           map[string]any{"const": true},
					"ci_passing":            map[string]any{"const": true},
					"no_unsafe_unwraps":     map[string]any{"const": true},
				},
			},
		},
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal acceptance schema for %s: %w", beadID, err)
	}
	return data, nil
}

// testNameArray declares an array of test names with a minimum count.
func testNameArray(minItems int) map[string]any {
	arr := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	if minItems > 0 {
		arr["minItems"] = minItems
	}
	return arr
}

// checkArray declares an array whose entries must come from the declared
// contract check strings, all of which must appear.
func checkArray(checks []string) map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    map[string]any{"enum": checks},
		"minItems": len(checks),
	}
}

// SchemaFileName returns the deterministic file name for a bead's schema.
func SchemaFileName(beadID string) string {
	return beadID + ".schema.json"
}

// WriteSchema emits the schema and writes it under dir, creating the
// directory if absent. Repeated generation for the same bead overwrites.
func WriteSchema(task models.Task, beadID, dir string) (string, error) {
	if dir == "" {
		dir = DefaultSchemaDir
	}
	data, err := EmitSchema(task, beadID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create schema directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, SchemaFileName(beadID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write acceptance schema %s: %w", path, err)
	}
	return path, nil
}
