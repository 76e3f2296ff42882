// Package bridge adapts a task's payload to the external schema validator:
// it serializes the payload to the validator's input encoding, invokes the
// validator against a fixed schema reference, and interprets the exit
// status. The validator's only observable contract is exit 0 = pass and
// stderr text on failure.
package bridge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/planforge/planforge/internal/shell"
	"github.com/planforge/planforge/models"
)

// DefaultCommand is the validator binary used when none is configured.
const DefaultCommand = "check-jsonschema"

// Result is the interpreted outcome of one validator invocation.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Bridge invokes the external validator through a Commander.
type Bridge struct {
	runner    shell.Commander
	command   string
	schemaRef string
}

// New creates a bridge for the given validator command and schema reference.
// An empty command falls back to DefaultCommand.
func New(runner shell.Commander, command, schemaRef string) *Bridge {
	if command == "" {
		command = DefaultCommand
	}
	return &Bridge{runner: runner, command: command, schemaRef: schemaRef}
}

// ValidateTask checks a task's payload against the fixed schema reference.
// Failures to serialize, create the temp file, or spawn the validator are
// reported as invalid results carrying the underlying message, never
// swallowed. The temporary file is removed on every exit path.
func (b *Bridge) ValidateTask(task models.Task) Result {
	data, err := json.Marshal(task.Payload)
	if err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("failed to serialize task payload: %v", err)}}
	}

	tmp, err := os.CreateTemp("", "planforge-validate-*.json")
	if err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("failed to create temp file for validation: %v", err)}}
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Result{Valid: false, Errors: []string{fmt.Sprintf("failed to write validation input %s: %v", tmpPath, err)}}
	}
	if err := tmp.Close(); err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("failed to close validation input %s: %v", tmpPath, err)}}
	}

	if _, err := b.runner.Run(b.command, b.schemaRef, tmpPath); err != nil {
		return Result{Valid: false, Errors: []string{err.Error()}}
	}
	return Result{Valid: true}
}

// IsInstalled checks whether the validator binary is reachable.
func (b *Bridge) IsInstalled() bool {
	return shell.IsInstalled(b.command)
}
