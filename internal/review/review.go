// Package review implements the three deterministic quality scorers and the
// gating policy applied before a task may be expanded. Every scorer is a
// pure function of the task payload: identical input yields identical
// scores, issue lists, and grades on every invocation.
package review

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/planforge/planforge/models"
)

// Verdict is the gate outcome for a task's aggregate score.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictWarn Verdict = "warn"
	VerdictFail Verdict = "fail"
)

// Result is one scorer's output. Score is clamped at zero for display;
// RawScore keeps the pre-clamp value so callers can see how far below the
// floor a payload landed. Ruthless is only set by the adversarial scorer.
type Result struct {
	Score           int      `json:"score"`
	RawScore        int      `json:"rawScore"`
	Grade           string   `json:"grade"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Ruthless        bool     `json:"ruthless,omitempty"`
}

// TaskReview bundles the three scorer results with the aggregate verdict.
type TaskReview struct {
	Contract    Result  `json:"contract"`
	TestDesign  Result  `json:"testDesign"`
	Adversarial Result  `json:"adversarial"`
	Aggregate   int     `json:"aggregate"`
	Verdict     Verdict `json:"verdict"`
}

// Grade maps a score to its letter grade. Anything under 60 is an F,
// however far negative the raw score went.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// ReviewTask runs all three scorers and aggregates them. The aggregate is
// the arithmetic mean of the three displayed scores, rounded to the nearest
// integer.
func ReviewTask(task models.Task) TaskReview {
	contract := ReviewContracts(task.Payload)
	testDesign := ReviewTestDesign(task.Payload)
	adversarial := ReviewAdversarial(task.Payload)

	mean := float64(contract.Score+testDesign.Score+adversarial.Score) / 3.0
	aggregate := int(math.Round(mean))

	return TaskReview{
		Contract:    contract,
		TestDesign:  testDesign,
		Adversarial: adversarial,
		Aggregate:   aggregate,
		Verdict:     VerdictFor(aggregate),
	}
}

// VerdictFor applies the gating policy to an aggregate score.
func VerdictFor(aggregate int) Verdict {
	switch {
	case aggregate >= 80:
		return VerdictPass
	case aggregate >= 60:
		return VerdictWarn
	default:
		return VerdictFail
	}
}

// scorecard accumulates deductions for one scorer.
type scorecard struct {
	score           int
	issues          []string
	recommendations []string
}

func newScorecard() *scorecard {
	return &scorecard{score: 100, issues: []string{}, recommendations: []string{}}
}

func (c *scorecard) deduct(points int, issue, recommendation string) {
	c.score -= points
	c.issues = append(c.issues, issue)
	if recommendation != "" {
		c.recommendations = append(c.recommendations, recommendation)
	}
}

func (c *scorecard) result() Result {
	display := c.score
	if display < 0 {
		display = 0
	}
	return Result{
		Score:           display,
		RawScore:        c.score,
		Grade:           Grade(display),
		Issues:          c.issues,
		Recommendations: c.recommendations,
	}
}

// zeroResult is the immediate score-0 outcome for a missing section.
func zeroResult(issue, recommendation string) Result {
	return Result{
		Score:           0,
		RawScore:        0,
		Grade:           Grade(0),
		Issues:          []string{issue},
		Recommendations: []string{recommendation},
	}
}

// present reports whether a list section exists with at least one entry.
// An empty list counts as missing; a single-entry list does not.
func present(list []string) bool {
	return len(list) > 0
}

// serializeTests renders the test section to its canonical serialized form
// for substring heuristics, lowercased. A nil plan serializes to "null",
// which matches nothing the heuristics look for.
func serializeTests(tests *models.TestPlan) string {
	data, err := json.Marshal(tests)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(data))
}

// containsAny reports whether the lowered form of s contains any of the
// given lowercase substrings.
func containsAny(s string, subs ...string) bool {
	lowered := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lowered, sub) {
			return true
		}
	}
	return false
}
