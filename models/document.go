package models

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// TaskDocument is the intake shape of a task description file. It mirrors
// Task minus the fields the system owns (status, work item links).
type TaskDocument struct {
	ID       string      `json:"id" yaml:"id"`
	Title    string      `json:"title" yaml:"title"`
	Type     string      `json:"type" yaml:"type"`
	Priority int         `json:"priority" yaml:"priority"`
	Effort   string      `json:"effort" yaml:"effort"`
	Data     TaskPayload `json:"data" yaml:"data"`
}

// ParseTaskDocument decodes a task description in JSON or YAML (chosen by
// the file extension, defaulting to JSON) and validates the resulting task.
// All enum and range violations are rejected here, before anything is stored.
func ParseTaskDocument(data []byte, path string) (Task, error) {
	var doc TaskDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Task{}, fmt.Errorf("failed to parse YAML task document %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Task{}, fmt.Errorf("failed to parse JSON task document %s: %w", path, err)
		}
	}

	task := NewTask(doc.ID, doc.Title, TaskType(doc.Type), doc.Priority, TaskEffort(doc.Effort), doc.Data)
	if task.Effort == "" {
		task.Effort = EffortMedium
	}
	if task.Type == "" {
		task.Type = TypeTask
	}
	if err := ValidateStruct(task); err != nil {
		return Task{}, fmt.Errorf("invalid task document %s: %w", path, err)
	}
	return task, nil
}
