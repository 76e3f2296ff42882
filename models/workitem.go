package models

import "time"

// WorkItemStatus represents the lifecycle state of a work item. Status only
// advances forward: generated -> valid -> created, or generated -> invalid.
type WorkItemStatus string

const (
	WorkItemGenerated WorkItemStatus = "generated"
	WorkItemValid     WorkItemStatus = "valid"
	WorkItemInvalid   WorkItemStatus = "invalid"
	WorkItemCreated   WorkItemStatus = "created"
)

// WorkItem is the expanded, schema-checkable artifact derived from a task.
type WorkItem struct {
	ID     string         `json:"id" yaml:"id" validate:"required"`
	TaskID string         `json:"taskId" yaml:"taskId" validate:"required"`
	Body   string         `json:"body" yaml:"body"`
	Status WorkItemStatus `json:"status" yaml:"status" validate:"required,oneof=generated valid invalid created"`

	ExternalID      string `json:"externalId,omitempty" yaml:"externalId,omitempty"`
	ValidationError string `json:"validationError,omitempty" yaml:"validationError,omitempty"`
	CreationError   string `json:"creationError,omitempty" yaml:"creationError,omitempty"`

	GeneratedAt time.Time  `json:"generatedAt" yaml:"generatedAt"`
	ValidatedAt *time.Time `json:"validatedAt,omitempty" yaml:"validatedAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// workItemRank orders statuses along the allowed forward progression.
var workItemRank = map[WorkItemStatus]int{
	WorkItemGenerated: 0,
	WorkItemValid:     1,
	WorkItemInvalid:   1,
	WorkItemCreated:   2,
}

// CanAdvanceTo reports whether moving to the given status is a legal forward
// transition. A created item is immutable, and only a valid item may be
// created; invalid is terminal.
func (w WorkItem) CanAdvanceTo(next WorkItemStatus) bool {
	if w.Status == WorkItemCreated {
		return false
	}
	if next == WorkItemCreated {
		return w.Status == WorkItemValid
	}
	return workItemRank[next] == workItemRank[w.Status]+1
}
