package models

import (
	"fmt"
	"sort"
	"time"
)

// SessionStatus represents the lifecycle state of a planning session.
type SessionStatus string

const (
	SessionInitialized SessionStatus = "initialized"
	SessionProcessing  SessionStatus = "processing"
	SessionComplete    SessionStatus = "complete"
)

// SessionCounters summarizes pipeline progress for a session.
type SessionCounters struct {
	Total     int `json:"total" yaml:"total"`
	Generated int `json:"generated" yaml:"generated"`
	Valid     int `json:"valid" yaml:"valid"`
	Invalid   int `json:"invalid" yaml:"invalid"`
	Created   int `json:"created" yaml:"created"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Session is one planning unit: a set of tasks, the work items derived from
// them, and running counters. TaskOrder preserves insertion order so every
// pipeline phase iterates deterministically.
type Session struct {
	ID          string        `json:"id" yaml:"id" validate:"required"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Status      SessionStatus `json:"status" yaml:"status" validate:"required,oneof=initialized processing complete"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" yaml:"updatedAt"`

	TaskOrder []string            `json:"taskOrder" yaml:"taskOrder"`
	Tasks     map[string]Task     `json:"tasks" yaml:"tasks"`
	WorkItems map[string]WorkItem `json:"workItems" yaml:"workItems"`
	Counters  SessionCounters     `json:"counters" yaml:"counters"`
}

// NewSession creates an initialized, empty session.
func NewSession(id, description string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          id,
		Description: description,
		Status:      SessionInitialized,
		CreatedAt:   now,
		UpdatedAt:   now,
		TaskOrder:   []string{},
		Tasks:       map[string]Task{},
		WorkItems:   map[string]WorkItem{},
	}
}

// AddTask appends a task to the session, rejecting duplicate ids. The
// session's task count and ordering are only touched on success.
func (s *Session) AddTask(task Task) error {
	if _, exists := s.Tasks[task.ID]; exists {
		return fmt.Errorf("task with ID '%s' already exists in session '%s'", task.ID, s.ID)
	}
	if err := ValidateStruct(task); err != nil {
		return fmt.Errorf("validation failed for task '%s': %w", task.ID, err)
	}
	s.Tasks[task.ID] = task
	s.TaskOrder = append(s.TaskOrder, task.ID)
	s.Counters.Total++
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// OrderedTasks returns the session's tasks in insertion order.
func (s *Session) OrderedTasks() []Task {
	tasks := make([]Task, 0, len(s.TaskOrder))
	for _, id := range s.TaskOrder {
		if t, ok := s.Tasks[id]; ok {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// OrderedWorkItems returns work items sorted by id. Work item ids carry a
// creation timestamp prefix, so this matches generation order.
func (s *Session) OrderedWorkItems() []WorkItem {
	ids := make([]string, 0, len(s.WorkItems))
	for id := range s.WorkItems {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]WorkItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, s.WorkItems[id])
	}
	return items
}
