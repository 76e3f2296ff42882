package review

import (
	"fmt"
	"strings"

	"github.com/planforge/planforge/models"
)

// ruthlessThreshold is the adversarial score under which callers are told
// to force escalation.
const ruthlessThreshold = 70

// ReviewAdversarial scores how seriously a task takes its own failure modes:
// weasel-worded requirements, missing unwanted-behavior analysis, placeholder
// tests, and plans that let implementation run ahead of tests.
func ReviewAdversarial(p models.TaskPayload) Result {
	c := newScorecard()

	if p.Requirements != nil {
		for _, req := range p.Requirements.Ubiquitous {
			if containsAny(req, "correctly", "properly", "successfully") {
				c.deduct(10, fmt.Sprintf("weasel-worded requirement: %q", req),
					"state the measurable behavior instead of 'correctly'/'properly'")
			}
		}
	}

	var unwanted []string
	if p.Requirements != nil {
		unwanted = p.Requirements.Unwanted
	}
	if !present(unwanted) {
		c.deduct(30, "no unwanted-behavior requirements declared",
			"state what the system must not do when things go wrong")
	} else if len(unwanted) < 2 {
		c.deduct(15, "fewer than 2 unwanted-behavior requirements",
			"there is always more than one way to misbehave")
	}

	if !present(p.Inversion) {
		c.deduct(25, "no inversion analysis: nobody asked what could go wrong",
			"list the ways this task fails before writing any code")
	}

	serialized := serializeTests(p.Tests)
	if containsAny(serialized, "example", "placeholder", "todo") {
		c.deduct(20, "test plan contains 'example', 'placeholder', or 'TODO' text",
			"finish the test plan before submitting the task")
	}

	if !present(p.Research) {
		c.deduct(15, "no research requirements declared",
			"list what must be read or confirmed before implementation")
	}

	if len(p.Phases) > 0 && !testsBeforeImplementation(p.Phases) {
		c.deduct(10, "phase breakdown does not put tests before implementation",
			"order phases so failing tests exist before implementation starts")
	}

	if p.Guards == nil || (!p.Guards.ReadBeforeWrite && len(p.Guards.Rules) == 0) {
		c.deduct(15, "no anti-hallucination guards declared",
			"require read-before-write and cite-your-sources rules")
	}

	totalTests := 0
	if p.Tests != nil {
		totalTests = len(p.Tests.HappyPath) + len(p.Tests.ErrorPath) + len(p.Tests.EdgeCases)
	}
	if totalTests < 5 {
		c.deduct(15, fmt.Sprintf("only %d happy/error/edge tests declared; minimum is 5", totalTests),
			"add scenarios until the combined happy+error+edge count reaches 5")
	}

	result := c.result()
	result.Ruthless = c.score < ruthlessThreshold
	return result
}

// testsBeforeImplementation reports whether the first test-writing phase
// precedes the first implementation phase. A plan with no implementation
// phase trivially satisfies the ordering.
func testsBeforeImplementation(phases []models.Phase) bool {
	testIdx, implIdx := -1, -1
	for i, phase := range phases {
		name := strings.ToLower(phase.Name)
		if testIdx == -1 && strings.Contains(name, "test") {
			testIdx = i
		}
		if implIdx == -1 && strings.Contains(name, "implement") {
			implIdx = i
		}
	}
	if implIdx == -1 {
		return true
	}
	return testIdx != -1 && testIdx < implIdx
}
