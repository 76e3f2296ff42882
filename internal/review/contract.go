package review

import (
	"fmt"

	"github.com/planforge/planforge/models"
)

// ReviewContracts scores the completeness and measurability of a task's
// behavioral contract.
func ReviewContracts(p models.TaskPayload) Result {
	if p.Contracts == nil {
		return zeroResult(
			"no contract section defined",
			"add a contracts section with preconditions, postconditions, and invariants",
		)
	}

	c := newScorecard()
	contracts := p.Contracts

	if !present(contracts.Preconditions) {
		c.deduct(30, "preconditions are missing or empty",
			"state what must hold before the operation may run")
	}
	if !present(contracts.Postconditions) {
		c.deduct(30, "postconditions are missing or empty",
			"state what must hold after the operation completes")
	}
	if !present(contracts.Invariants) {
		c.deduct(30, "invariants are missing or empty",
			"state what must hold throughout the operation")
	}
	if len(contracts.Invariants) < 2 {
		c.deduct(10, "fewer than 2 invariants declared",
			"an operation with one invariant rarely has only one; look for more")
	}

	for _, pre := range contracts.Preconditions {
		if containsAny(pre, "valid", "correct") {
			c.deduct(5, fmt.Sprintf("vague precondition: %q", pre),
				"replace 'valid'/'correct' with a checkable condition")
		}
	}
	for _, post := range contracts.Postconditions {
		if containsAny(post, "success", "works") {
			c.deduct(5, fmt.Sprintf("unmeasurable postcondition: %q", post),
				"replace 'success'/'works' with an observable outcome")
		}
	}

	if p.Tests == nil {
		c.deduct(20, "no test section defined",
			"declare tests that exercise the contract")
	} else if !present(p.Tests.ContractTests) {
		c.deduct(15, "tests exist but no dedicated contract-test category",
			"add contract_tests that demonstrate each pre/postcondition")
	}

	if p.Tests != nil && present(p.Tests.ErrorPath) {
		covered := false
		for _, name := range p.Tests.ErrorPath {
			if containsAny(name, "precondition", "invalid", "missing") {
				covered = true
				break
			}
		}
		if !covered {
			c.deduct(10, "error tests never exercise precondition violations, invalid input, or missing resources",
				"add error tests for each way a precondition can be violated")
		}
	}

	return c.result()
}
