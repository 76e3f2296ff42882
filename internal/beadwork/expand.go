package beadwork

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planforge/planforge/models"
)

// NewBeadID generates a work-item id: a UTC timestamp for ordering plus a
// random suffix so two items generated in the same second never collide.
func NewBeadID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("bead-%s-%s", now.UTC().Format("20060102T150405"), suffix)
}

// completionChecklist is the fixed set of done-criteria every bead carries.
var completionChecklist = []string{
	"All acceptance tests pass against the real implementation",
	"Every declared precondition, postcondition, and invariant is demonstrated",
	"No panics, unchecked errors, or unsafe unwrap-equivalents remain",
	"Continuous integration is green on the submitted revision",
	"The acceptance schema validates the self-reported proof document",
}

// Expand produces the full work-item body for a task. Absent payload
// sections are filled from the centralized defaults so the output is always
// structurally complete, and every piece of free text is escaped by the
// document encoder.
func Expand(task models.Task, beadID string) string {
	p := task.Payload.WithDefaults()
	b := NewBuilder()

	b.Section("identification").
		Field("bead_id", beadID).
		Field("task_id", task.ID).
		Field("title", task.Title).
		Field("type", string(task.Type)).
		Number("priority", task.Priority).
		Field("effort", string(task.Effort))

	b.Section("requirements").
		List("ubiquitous", p.Requirements.Ubiquitous).
		List("event_driven", p.Requirements.EventDriven).
		List("state_driven", p.Requirements.StateDriven).
		List("unwanted", p.Requirements.Unwanted)

	b.Section("contracts").
		List("preconditions", p.Contracts.Preconditions).
		List("postconditions", p.Contracts.Postconditions).
		List("invariants", p.Contracts.Invariants)

	b.Section("research_requirements").
		List("before_implementation", p.Research)

	b.Section("inversion").
		List("what_could_go_wrong", p.Inversion)

	b.Section("acceptance_tests").
		List("happy_path", p.Tests.HappyPath).
		List("error_path", p.Tests.ErrorPath).
		List("edge_cases", p.Tests.EdgeCases).
		List("contract_tests", p.Tests.ContractTests)

	phases := b.Section("execution_plan")
	for i, phase := range p.Phases {
		gate := phase.Gate
		if gate == "" {
			gate = "Previous phase fully complete"
		}
		phases.Field(fmt.Sprintf("phase_%d", i+1), phase.Name).
			List(fmt.Sprintf("phase_%d_steps", i+1), phase.Steps).
			Field(fmt.Sprintf("phase_%d_gate", i+1), gate)
	}

	rows := make([]map[string]string, 0, len(p.FailureModes))
	for _, fm := range p.FailureModes {
		rows = append(rows, map[string]string{
			"symptom":  fm.Symptom,
			"cause":    fm.Cause,
			"recovery": fm.Recovery,
		})
	}
	if len(rows) == 0 {
		rows = append(rows, map[string]string{
			"symptom":  "Acceptance tests cannot run",
			"cause":    "Required tooling missing from the environment",
			"recovery": "Install the declared prerequisites and rerun",
		})
	}
	b.Section("failure_modes").
		Table("lookup", []string{"symptom", "cause", "recovery"}, rows)

	b.Section("anti_hallucination").
		Flag("read_before_write", p.Guards.ReadBeforeWrite).
		List("rules", p.Guards.Rules)

	b.Section("completion_checklist").
		List("items", completionChecklist)

	b.Section("context").
		Field("notes", p.Context)

	return b.Encode()
}
