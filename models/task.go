package models

// TaskStatus represents the possible statuses of a task within a session.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusGenerated TaskStatus = "generated"
)

// TaskType represents the kind of work a task describes. The values mirror
// the issue types understood by the downstream tracker.
type TaskType string

const (
	TypeFeature TaskType = "feature"
	TypeBug     TaskType = "bug"
	TypeTask    TaskType = "task"
	TypeEpic    TaskType = "epic"
	TypeChore   TaskType = "chore"
)

// TaskEffort represents the fixed effort buckets a task may be sized into.
type TaskEffort string

const (
	EffortTrivial TaskEffort = "trivial"
	EffortSmall   TaskEffort = "small"
	EffortMedium  TaskEffort = "medium"
	EffortLarge   TaskEffort = "large"
	EffortXLarge  TaskEffort = "xlarge"
)

// Task is one unit of work under review. The ID is caller-supplied and must
// be unique within its session. Payload carries the contract/test/requirement
// sections consumed by the review engine and the expander.
type Task struct {
	ID       string      `json:"id" yaml:"id" validate:"required,min=1,max=64"`
	Title    string      `json:"title" yaml:"title" validate:"required,min=3,max=255"`
	Type     TaskType    `json:"type" yaml:"type" validate:"required,oneof=feature bug task epic chore"`
	Priority int         `json:"priority" yaml:"priority" validate:"min=0,max=4"`
	Effort   TaskEffort  `json:"effort" yaml:"effort" validate:"required,oneof=trivial small medium large xlarge"`
	Payload  TaskPayload `json:"data" yaml:"data"`
	Status   TaskStatus  `json:"status" yaml:"status" validate:"required,oneof=pending generated"`

	// Set by the generate phase once a work item has been derived.
	WorkItemID string `json:"workItemId,omitempty" yaml:"workItemId,omitempty"`
	SchemaPath string `json:"schemaPath,omitempty" yaml:"schemaPath,omitempty"`
}

// NewTask creates a pending task with the given identity fields.
func NewTask(id, title string, taskType TaskType, priority int, effort TaskEffort, payload TaskPayload) Task {
	return Task{
		ID:       id,
		Title:    title,
		Type:     taskType,
		Priority: priority,
		Effort:   effort,
		Payload:  payload,
		Status:   TaskStatusPending,
	}
}
