package beadwork

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/planforge/planforge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var beadIDPattern = regexp.MustCompile(`^bead-\d{8}T\d{6}-[0-9a-f]{6}$`)

func TestNewBeadIDShape(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 1, 2, 0, time.UTC)
	id := NewBeadID(now)

	assert.Regexp(t, beadIDPattern, id)
	assert.Contains(t, id, "20260830T120102")
}

func TestNewBeadIDsSortByGenerationTime(t *testing.T) {
	earlier := NewBeadID(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	later := NewBeadID(time.Date(2026, 8, 30, 12, 0, 1, 0, time.UTC))

	assert.Less(t, earlier, later)
}

func TestNewBeadIDsDoNotCollide(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewBeadID(now)
		assert.False(t, seen[id], "duplicate bead id %s", id)
		seen[id] = true
	}
}

func TestExpandMinimalTaskIsStructurallyComplete(t *testing.T) {
	task := models.NewTask("t-1", "Bare minimum task", models.TypeTask, 2, models.EffortSmall, models.TaskPayload{})
	body := Expand(task, "bead-20260830T120102-abc123")

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &doc), "body: %s", body)

	for _, section := range []string{
		"identification", "requirements", "contracts", "research_requirements",
		"inversion", "acceptance_tests", "execution_plan", "failure_modes",
		"anti_hallucination", "completion_checklist", "context",
	} {
		assert.Contains(t, doc, section)
	}

	// Absent sections are filled with the fixed generic defaults.
	pre := doc["contracts"]["preconditions"].([]any)
	require.Len(t, pre, 1)
	assert.Equal(t, models.DefaultPrecondition, pre[0])
	assert.Equal(t, models.DefaultContext, doc["context"]["notes"])
}

func TestExpandCarriesTaskIdentity(t *testing.T) {
	task := models.NewTask("t-9", "Ship the expander", models.TypeFeature, 0, models.EffortLarge, models.TaskPayload{})
	body := Expand(task, "bead-20260830T120102-abc123")

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	ident := doc["identification"]
	assert.Equal(t, "bead-20260830T120102-abc123", ident["bead_id"])
	assert.Equal(t, "t-9", ident["task_id"])
	assert.Equal(t, "Ship the expander", ident["title"])
	assert.Equal(t, "feature", ident["type"])
	assert.Equal(t, float64(0), ident["priority"])
	assert.Equal(t, "large", ident["effort"])
}

func TestExpandEscapesHostileText(t *testing.T) {
	payload := models.TaskPayload{
		Contracts: &models.Contracts{
			Preconditions:  []string{"path is C:\\data\\in \"quoted\" form"},
			Postconditions: []string{"output has\nmultiple\tlines"},
			Invariants:     []string{"a", "b"},
		},
		Context: "notes with \"quotes\" and \\ and\nnewlines",
	}
	task := models.NewTask("t-2", "Hostile text task", models.TypeBug, 1, models.EffortMedium, payload)
	body := Expand(task, "bead-20260830T120102-abc123")

	// The body must stay parseable and the text must survive intact.
	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &doc), "body: %s", body)

	pre := doc["contracts"]["preconditions"].([]any)
	assert.Equal(t, "path is C:\\data\\in \"quoted\" form", pre[0])
	assert.Equal(t, "notes with \"quotes\" and \\ and\nnewlines", doc["context"]["notes"])
}

func TestExpandRendersPhasesWithGates(t *testing.T) {
	payload := models.TaskPayload{
		Phases: []models.Phase{
			{Name: "Write failing tests", Steps: []string{"enumerate scenarios"}, Gate: "tests exist and fail"},
			{Name: "Implement", Steps: []string{"smallest change that passes"}},
		},
	}
	task := models.NewTask("t-3", "Phased task", models.TypeTask, 2, models.EffortMedium, payload)
	body := Expand(task, "bead-20260830T120102-abc123")

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	plan := doc["execution_plan"]
	assert.Equal(t, "Write failing tests", plan["phase_1"])
	assert.Equal(t, "tests exist and fail", plan["phase_1_gate"])
	assert.Equal(t, "Implement", plan["phase_2"])
	// A phase without an explicit gate still gets one.
	assert.Equal(t, "Previous phase fully complete", plan["phase_2_gate"])
}

func TestExpandIsDeterministic(t *testing.T) {
	task := models.NewTask("t-4", "Deterministic expansion", models.TypeTask, 2, models.EffortMedium, models.TaskPayload{})

	first := Expand(task, "bead-20260830T120102-abc123")
	second := Expand(task, "bead-20260830T120102-abc123")
	assert.Equal(t, first, second)
}
