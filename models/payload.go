package models

// TaskPayload is the structured section data a task carries for review and
// expansion. Every field is optional at intake; consumers that need a fully
// populated shape go through WithDefaults so the fallback values live in
// exactly one place.
type TaskPayload struct {
	Requirements *Requirements `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Contracts    *Contracts    `json:"contracts,omitempty" yaml:"contracts,omitempty"`
	Tests        *TestPlan     `json:"tests,omitempty" yaml:"tests,omitempty"`

	// Inversion holds the what-could-go-wrong analysis; FailureModes is the
	// symptom/cause/recovery lookup table derived from it.
	Inversion    []string      `json:"inversion,omitempty" yaml:"inversion,omitempty"`
	FailureModes []FailureMode `json:"failure_modes,omitempty" yaml:"failure_modes,omitempty"`

	Research []string `json:"research,omitempty" yaml:"research,omitempty"`
	Phases   []Phase  `json:"phases,omitempty" yaml:"phases,omitempty"`
	Guards   *Guards  `json:"guards,omitempty" yaml:"guards,omitempty"`
	Context  string   `json:"context,omitempty" yaml:"context,omitempty"`
}

// Requirements groups requirement statements by EARS bucket.
type Requirements struct {
	Ubiquitous  []string `json:"ubiquitous,omitempty" yaml:"ubiquitous,omitempty"`
	EventDriven []string `json:"event_driven,omitempty" yaml:"event_driven,omitempty"`
	StateDriven []string `json:"state_driven,omitempty" yaml:"state_driven,omitempty"`
	Unwanted    []string `json:"unwanted,omitempty" yaml:"unwanted,omitempty"`
}

// Contracts holds the behavioral contract a work item must demonstrate.
type Contracts struct {
	Preconditions  []string `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	Postconditions []string `json:"postconditions,omitempty" yaml:"postconditions,omitempty"`
	Invariants     []string `json:"invariants,omitempty" yaml:"invariants,omitempty"`
}

// TestPlan enumerates test scenario names by category.
type TestPlan struct {
	HappyPath     []string `json:"happy_path,omitempty" yaml:"happy_path,omitempty"`
	ErrorPath     []string `json:"error_path,omitempty" yaml:"error_path,omitempty"`
	EdgeCases     []string `json:"edge_cases,omitempty" yaml:"edge_cases,omitempty"`
	ContractTests []string `json:"contract_tests,omitempty" yaml:"contract_tests,omitempty"`
	Integration   []string `json:"integration,omitempty" yaml:"integration,omitempty"`
}

// FailureMode is one row of the failure-mode lookup table.
type FailureMode struct {
	Symptom  string `json:"symptom" yaml:"symptom"`
	Cause    string `json:"cause" yaml:"cause"`
	Recovery string `json:"recovery" yaml:"recovery"`
}

// Phase is one step of the execution-phase breakdown. Gate names the
// condition that must hold before the next phase may start.
type Phase struct {
	Name  string   `json:"name" yaml:"name"`
	Steps []string `json:"steps,omitempty" yaml:"steps,omitempty"`
	Gate  string   `json:"gate,omitempty" yaml:"gate,omitempty"`
}

// Guards holds the anti-hallucination rules an implementer must follow.
type Guards struct {
	ReadBeforeWrite bool     `json:"read_before_write" yaml:"read_before_write"`
	Rules           []string `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Fallback values substituted for absent payload sections during expansion.
// The generic wording is deliberate so generated documents are recognizably
// placeholder-complete rather than silently empty.
const (
	DefaultPrecondition  = "System is installed and configured"
	DefaultPostcondition = "Operation completes and its result is persisted"
	DefaultInvariant     = "Session state remains internally consistent"
	DefaultRequirement   = "The system shall perform the work described by the task title"
	DefaultUnwanted      = "If the operation cannot complete, the system shall report an error and leave prior state intact"
	DefaultHappyTest     = "test_primary_scenario_produces_expected_output"
	DefaultErrorTest     = "test_invalid_input_is_rejected_with_error"
	DefaultEdgeTest      = "test_boundary_values_are_handled"
	DefaultContractTest  = "test_contract_preconditions_enforced"
	DefaultInversion     = "Required external tooling is missing at execution time"
	DefaultResearch      = "Confirm the affected interfaces before changing them"
	DefaultGuardRule     = "Read every file before modifying it"
	DefaultContext       = "No additional context provided"
)

// WithDefaults returns a copy of the payload with every absent optional
// section replaced by its fixed default so the expanded document is always
// structurally complete. The receiver is not modified; review scoring must
// keep seeing the raw shape.
func (p TaskPayload) WithDefaults() TaskPayload {
	out := p

	if out.Requirements == nil {
		out.Requirements = &Requirements{}
	} else {
		reqs := *out.Requirements
		out.Requirements = &reqs
	}
	if len(out.Requirements.Ubiquitous) == 0 {
		out.Requirements.Ubiquitous = []string{DefaultRequirement}
	}
	if len(out.Requirements.Unwanted) == 0 {
		out.Requirements.Unwanted = []string{DefaultUnwanted}
	}

	if out.Contracts == nil {
		out.Contracts = &Contracts{}
	} else {
		contracts := *out.Contracts
		out.Contracts = &contracts
	}
	if len(out.Contracts.Preconditions) == 0 {
		out.Contracts.Preconditions = []string{DefaultPrecondition}
	}
	if len(out.Contracts.Postconditions) == 0 {
		out.Contracts.Postconditions = []string{DefaultPostcondition}
	}
	if len(out.Contracts.Invariants) == 0 {
		out.Contracts.Invariants = []string{DefaultInvariant}
	}

	if out.Tests == nil {
		out.Tests = &TestPlan{}
	} else {
		tests := *out.Tests
		out.Tests = &tests
	}
	if len(out.Tests.HappyPath) == 0 {
		out.Tests.HappyPath = []string{DefaultHappyTest}
	}
	if len(out.Tests.ErrorPath) == 0 {
		out.Tests.ErrorPath = []string{DefaultErrorTest}
	}
	if len(out.Tests.EdgeCases) == 0 {
		out.Tests.EdgeCases = []string{DefaultEdgeTest}
	}
	if len(out.Tests.ContractTests) == 0 {
		out.Tests.ContractTests = []string{DefaultContractTest}
	}

	if len(out.Inversion) == 0 {
		out.Inversion = []string{DefaultInversion}
	}
	if len(out.Research) == 0 {
		out.Research = []string{DefaultResearch}
	}
	if len(out.Phases) == 0 {
		out.Phases = []Phase{
			{Name: "Write failing tests", Gate: "All acceptance tests exist and fail"},
			{Name: "Implement", Gate: "All acceptance tests pass"},
			{Name: "Verify contracts", Gate: "Every contract check is demonstrated"},
		}
	}
	if out.Guards == nil {
		out.Guards = &Guards{ReadBeforeWrite: true, Rules: []string{DefaultGuardRule}}
	} else {
		guards := *out.Guards
		out.Guards = &guards
		if len(out.Guards.Rules) == 0 {
			out.Guards.Rules = []string{DefaultGuardRule}
		}
	}
	if out.Context == "" {
		out.Context = DefaultContext
	}

	return out
}
