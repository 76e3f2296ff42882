package review

import (
	"fmt"
	"regexp"

	"github.com/planforge/planforge/models"
)

// bareFoo matches "foo" as a standalone word in the serialized test section.
var bareFoo = regexp.MustCompile(`\bfoo\b`)

// ReviewTestDesign scores the shape and honesty of a task's test plan.
func ReviewTestDesign(p models.TaskPayload) Result {
	if p.Tests == nil {
		return zeroResult(
			"no test section defined",
			"add a tests section with happy-path, error-path, and edge-case scenarios",
		)
	}

	c := newScorecard()
	tests := p.Tests

	if !present(tests.HappyPath) {
		c.deduct(30, "happy-path tests are missing",
			"name the scenarios where the operation succeeds")
	} else if len(tests.HappyPath) < 2 {
		c.deduct(10, "fewer than 2 happy-path tests",
			"cover more than one success scenario")
	}

	if !present(tests.ErrorPath) {
		c.deduct(30, "error-path tests are missing",
			"name the scenarios where the operation must fail cleanly")
	} else if len(tests.ErrorPath) < 2 {
		c.deduct(10, "fewer than 2 error-path tests",
			"cover more than one failure scenario")
	}

	if !present(tests.EdgeCases) {
		c.deduct(15, "no edge-case tests declared",
			"add boundary and extreme-value scenarios")
	}

	for _, name := range tests.HappyPath {
		if containsAny(name, "works", "succeeds") {
			c.deduct(5, fmt.Sprintf("unmeasurable happy-path test: %q", name),
				"describe the expected output, not that it 'works'")
		}
	}

	serialized := serializeTests(tests)

	if containsAny(serialized, "mock", "stub") {
		c.deduct(20, "test plan relies on mocks or stubs",
			"test against real data and real collaborators")
	}

	if p.Contracts != nil && !present(tests.ContractTests) {
		c.deduct(10, "contracts exist without a contract-test category",
			"add contract_tests demonstrating the declared contract")
	}

	if present(tests.Integration) && !present(tests.HappyPath) && !present(tests.ErrorPath) {
		c.deduct(15, "only end-to-end tests declared; no unit-level happy or error tests",
			"build the testing pyramid bottom-up: unit tests first")
	}

	if containsAny(serialized, "example.com", "test@test.com") || bareFoo.MatchString(serialized) {
		c.deduct(10, "test plan contains placeholder domains, emails, or names",
			"use realistic data the production path would see")
	}

	return c.result()
}
