package review

import (
	"testing"

	"github.com/planforge/planforge/models"
	"github.com/stretchr/testify/assert"
)

func cleanTestPlan() *models.TestPlan {
	return &models.TestPlan{
		HappyPath:     []string{"test_expand_emits_all_sections", "test_schema_overwrites_existing_file"},
		ErrorPath:     []string{"test_invalid_payload_rejected", "test_missing_session_reported"},
		EdgeCases:     []string{"test_empty_payload_uses_defaults"},
		ContractTests: []string{"test_precondition_unique_id_enforced"},
	}
}

func TestTestDesignMissingSectionScoresZero(t *testing.T) {
	result := ReviewTestDesign(models.TaskPayload{Contracts: fullContracts()})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "F", result.Grade)
}

func TestTestDesignCleanPlanScoresFull(t *testing.T) {
	p := models.TaskPayload{Contracts: fullContracts(), Tests: cleanTestPlan()}
	result := ReviewTestDesign(p)

	assert.Equal(t, 100, result.Score, "issues: %v", result.Issues)
}

func TestTestDesignHappyPathBoundaries(t *testing.T) {
	p := models.TaskPayload{Tests: cleanTestPlan()}

	p.Tests.HappyPath = nil
	assert.Equal(t, 70, ReviewTestDesign(p).Score, "missing happy path deducts 30")

	p.Tests.HappyPath = []string{"test_single_scenario_output_matches"}
	assert.Equal(t, 90, ReviewTestDesign(p).Score, "one happy test deducts 10, not 30")
}

func TestTestDesignErrorPathBoundaries(t *testing.T) {
	p := models.TaskPayload{Tests: cleanTestPlan()}

	p.Tests.ErrorPath = []string{}
	assert.Equal(t, 70, ReviewTestDesign(p).Score)

	p.Tests.ErrorPath = []string{"test_invalid_payload_rejected"}
	assert.Equal(t, 90, ReviewTestDesign(p).Score)
}

func TestTestDesignMissingEdgeCases(t *testing.T) {
	p := models.TaskPayload{Tests: cleanTestPlan()}
	p.Tests.EdgeCases = nil

	assert.Equal(t, 85, ReviewTestDesign(p).Score)
}

func TestTestDesignUnmeasurableHappyTests(t *testing.T) {
	p := models.TaskPayload{Tests: cleanTestPlan()}
	p.Tests.HappyPath = []string{"test_export_works", "test_import_succeeds"}

	result := ReviewTestDesign(p)
	assert.Equal(t, 90, result.Score, "5 per unmeasurable name; issues: %v", result.Issues)
}

func TestTestDesignMocksAndStubsPenalized(t *testing.T) {
	p := models.TaskPayload{Tests: cleanTestPlan()}
	p.Tests.Integration = []string{"test_with_mock_tracker"}

	assert.Equal(t, 80, ReviewTestDesign(p).Score)
}

func TestTestDesignContractsWithoutContractTests(t *testing.T) {
	p := models.TaskPayload{Contracts: fullContracts(), Tests: cleanTestPlan()}
	p.Tests.ContractTests = nil

	assert.Equal(t, 90, ReviewTestDesign(p).Score)
}

func TestTestDesignPyramidViolation(t *testing.T) {
	p := models.TaskPayload{
		Tests: &models.TestPlan{
			Integration: []string{"test_full_pipeline_end_to_end", "test_cli_round_trip"},
		},
	}
	result := ReviewTestDesign(p)

	// missing happy (30) + missing error (30) + missing edge (15) + pyramid (15)
	assert.Equal(t, 10, result.Score, "issues: %v", result.Issues)
}

func TestTestDesignPlaceholderData(t *testing.T) {
	p := models.TaskPayload{Tests: cleanTestPlan()}
	p.Tests.EdgeCases = []string{"test_rejects_address_user@example.com"}
	assert.Equal(t, 90, ReviewTestDesign(p).Score)

	p.Tests.EdgeCases = []string{"test rejects foo as an account name"}
	assert.Equal(t, 90, ReviewTestDesign(p).Score, "bare word 'foo' is a placeholder")

	// "food" must not trip the bare-foo check.
	p.Tests.EdgeCases = []string{"test_food_catalog_import"}
	assert.Equal(t, 100, ReviewTestDesign(p).Score)
}
