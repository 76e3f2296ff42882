// Package pipeline drives a session through the four processing phases:
// generate, validate, submit, report. Each phase iterates over its eligible
// items in stored insertion order and isolates per-item failures, so one
// bad task never aborts the batch.
package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/planforge/planforge/internal/beadwork"
	"github.com/planforge/planforge/internal/review"
	"github.com/planforge/planforge/models"
	"github.com/planforge/planforge/store"
)

// Expander turns a task into a work-item body.
type Expander interface {
	Expand(task models.Task, beadID string) (string, error)
}

// SchemaWriter emits a task's acceptance schema and returns its path.
type SchemaWriter interface {
	WriteSchema(task models.Task, beadID, dir string) (string, error)
}

// IssueCreator submits one issue to the external tracker.
type IssueCreator interface {
	CreateIssue(title string, issueType models.TaskType, priority int, description string) (string, error)
}

type defaultExpander struct{}

func (defaultExpander) Expand(task models.Task, beadID string) (string, error) {
	return beadwork.Expand(task, beadID), nil
}

type defaultSchemaWriter struct{}

func (defaultSchemaWriter) WriteSchema(task models.Task, beadID, dir string) (string, error) {
	return beadwork.WriteSchema(task, beadID, dir)
}

// Pipeline owns the single mutable in-memory session copy for the duration
// of one run and persists it after every phase.
type Pipeline struct {
	Store     store.SessionStore
	Tracker   IssueCreator
	SchemaDir string

	// Expand and Schemas default to the beadwork implementations; tests
	// substitute failing ones.
	Expand  Expander
	Schemas SchemaWriter

	// Log receives per-item progress and isolated failures.
	Log io.Writer

	// Now is the clock used for bead ids and phase timestamps.
	Now func() time.Time

	// SkipSubmit stops the run after validation, leaving valid items
	// unsubmitted.
	SkipSubmit bool
}

// New creates a pipeline with the default expander and schema writer.
func New(s store.SessionStore, tracker IssueCreator, schemaDir string, log io.Writer) *Pipeline {
	if log == nil {
		log = io.Discard
	}
	return &Pipeline{
		Store:     s,
		Tracker:   tracker,
		SchemaDir: schemaDir,
		Expand:    defaultExpander{},
		Schemas:   defaultSchemaWriter{},
		Log:       log,
		Now:       time.Now,
	}
}

// Run drives the session through every phase and returns the final state.
func (p *Pipeline) Run(sessionID string) (*models.Session, error) {
	session, err := p.Store.Load(sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = models.SessionProcessing
	session.UpdatedAt = p.Now().UTC()
	if err := p.Store.Save(session); err != nil {
		return nil, err
	}

	p.GeneratePhase(session)
	if err := p.Store.Save(session); err != nil {
		return nil, err
	}

	p.ValidatePhase(session)
	if err := p.Store.Save(session); err != nil {
		return nil, err
	}

	if !p.SkipSubmit {
		p.SubmitPhase(session)
	}
	session.Status = models.SessionComplete
	session.UpdatedAt = p.Now().UTC()
	if err := p.Store.Save(session); err != nil {
		return nil, err
	}

	return session, nil
}

// GeneratePhase expands every pending task that clears the quality gate
// into a work item plus acceptance schema. Tasks that fail the gate, or
// whose expansion fails, are logged and left pending.
func (p *Pipeline) GeneratePhase(session *models.Session) {
	for _, task := range session.OrderedTasks() {
		if task.Status != models.TaskStatusPending {
			continue
		}

		result := review.ReviewTask(task)
		if result.Verdict == review.VerdictFail {
			fmt.Fprintf(p.Log, "task %s: blocked by quality gate (aggregate %d)\n", task.ID, result.Aggregate)
			continue
		}
		if result.Verdict == review.VerdictWarn {
			fmt.Fprintf(p.Log, "task %s: proceeding with warning (aggregate %d)\n", task.ID, result.Aggregate)
		}

		now := p.Now().UTC()
		beadID := beadwork.NewBeadID(now)

		body, err := p.safeExpand(task, beadID)
		if err != nil {
			fmt.Fprintf(p.Log, "task %s: expansion failed: %v\n", task.ID, err)
			continue
		}
		schemaPath, err := p.Schemas.WriteSchema(task, beadID, p.SchemaDir)
		if err != nil {
			fmt.Fprintf(p.Log, "task %s: schema emission failed: %v\n", task.ID, err)
			continue
		}

		session.WorkItems[beadID] = models.WorkItem{
			ID:          beadID,
			TaskID:      task.ID,
			Body:        body,
			Status:      models.WorkItemGenerated,
			GeneratedAt: now,
		}
		task.Status = models.TaskStatusGenerated
		task.WorkItemID = beadID
		task.SchemaPath = schemaPath
		session.Tasks[task.ID] = task
		session.Counters.Generated++
	}
	session.UpdatedAt = p.Now().UTC()
}

// safeExpand recovers an expander panic into an error so the generate loop
// treats it like any other per-item failure.
func (p *Pipeline) safeExpand(task models.Task, beadID string) (body string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("expansion panicked: %v", r)
		}
	}()
	return p.Expand.Expand(task, beadID)
}

// ValidatePhase applies the self-consistency check to every generated work
// item: a non-empty body is valid, an empty one is not. Structural payload
// checks happen at intake via the validation bridge, not here.
func (p *Pipeline) ValidatePhase(session *models.Session) {
	for _, item := range session.OrderedWorkItems() {
		if item.Status != models.WorkItemGenerated {
			continue
		}
		next := models.WorkItemValid
		var validationErr string
		if strings.TrimSpace(item.Body) == "" {
			next = models.WorkItemInvalid
			validationErr = "expanded body is empty"
		}
		if !item.CanAdvanceTo(next) {
			fmt.Fprintf(p.Log, "work item %s: illegal transition %s -> %s\n", item.ID, item.Status, next)
			continue
		}
		now := p.Now().UTC()
		item.ValidatedAt = &now
		item.Status = next
		if next == models.WorkItemInvalid {
			item.ValidationError = validationErr
			session.Counters.Invalid++
			fmt.Fprintf(p.Log, "work item %s: invalid: %s\n", item.ID, item.ValidationError)
		} else {
			session.Counters.Valid++
		}
		session.WorkItems[item.ID] = item
	}
	session.UpdatedAt = p.Now().UTC()
}

// SubmitPhase hands every valid work item to the tracker. A failed
// submission records the error on the item and continues with the next one.
func (p *Pipeline) SubmitPhase(session *models.Session) {
	for _, item := range session.OrderedWorkItems() {
		if item.Status != models.WorkItemValid || !item.CanAdvanceTo(models.WorkItemCreated) {
			continue
		}
		task, ok := session.Tasks[item.TaskID]
		if !ok {
			item.CreationError = fmt.Sprintf("work item references unknown task %s", item.TaskID)
			session.Counters.Failed++
			session.WorkItems[item.ID] = item
			fmt.Fprintf(p.Log, "work item %s: %s\n", item.ID, item.CreationError)
			continue
		}

		description := item.Body
		if task.SchemaPath != "" {
			description = fmt.Sprintf("Acceptance schema: %s\n\n%s", task.SchemaPath, item.Body)
		}

		externalID, err := p.Tracker.CreateIssue(task.Title, task.Type, task.Priority, description)
		if err != nil {
			item.CreationError = err.Error()
			session.Counters.Failed++
			session.WorkItems[item.ID] = item
			fmt.Fprintf(p.Log, "work item %s: submission failed: %v\n", item.ID, err)
			continue
		}

		now := p.Now().UTC()
		item.Status = models.WorkItemCreated
		item.ExternalID = externalID
		item.CreatedAt = &now
		session.Counters.Created++
		session.WorkItems[item.ID] = item
	}
	session.UpdatedAt = p.Now().UTC()
}

// Report renders the human-readable phase summary, grouped by final status.
func Report(session *models.Session) string {
	var b strings.Builder
	c := session.Counters

	fmt.Fprintf(&b, "Session %s (%s)\n", session.ID, session.Status)
	fmt.Fprintf(&b, "  tasks: %d total, %d generated\n", c.Total, c.Generated)
	fmt.Fprintf(&b, "  work items: %d valid, %d invalid, %d created, %d failed\n", c.Valid, c.Invalid, c.Created, c.Failed)

	byStatus := map[models.WorkItemStatus][]models.WorkItem{}
	for _, item := range session.OrderedWorkItems() {
		byStatus[item.Status] = append(byStatus[item.Status], item)
	}

	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		fmt.Fprintf(&b, "\n%s:\n", status)
		for _, item := range byStatus[models.WorkItemStatus(status)] {
			line := fmt.Sprintf("  %s (task %s)", item.ID, item.TaskID)
			if item.ExternalID != "" {
				line += fmt.Sprintf(" -> %s", item.ExternalID)
			}
			if item.ValidationError != "" {
				line += fmt.Sprintf(" [%s]", item.ValidationError)
			}
			if item.CreationError != "" {
				line += fmt.Sprintf(" [%s]", item.CreationError)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
