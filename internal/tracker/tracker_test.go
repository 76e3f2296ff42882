package tracker

import (
	"errors"
	"strings"
	"testing"

	"github.com/planforge/planforge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommander struct {
	called   bool
	lastName string
	lastArgs []string
	out      string
	err      error
}

func (f *fakeCommander) Run(name string, args ...string) (string, error) {
	f.called = true
	f.lastName = name
	f.lastArgs = args
	return f.out, f.err
}

func (f *fakeCommander) RunInDir(dir, name string, args ...string) (string, error) {
	return f.Run(name, args...)
}

func TestCreateIssueBuildsExpectedInvocation(t *testing.T) {
	fake := &fakeCommander{out: "bd-1234"}
	c := New(fake, "")

	id, err := c.CreateIssue("Expand intake task", models.TypeFeature, 1, "the body")
	require.NoError(t, err)
	assert.Equal(t, "bd-1234", id)

	assert.Equal(t, DefaultBinary, fake.lastName)
	assert.Equal(t, []string{
		"create", "Expand intake task",
		"--type", "feature",
		"--priority", "1",
		"--description", "the body",
	}, fake.lastArgs)
}

func TestCreateIssueUsesFirstOutputLine(t *testing.T) {
	fake := &fakeCommander{out: "bd-77\nCreated issue bd-77 in workspace"}
	c := New(fake, "bd")

	id, err := c.CreateIssue("Title here", models.TypeTask, 2, "body")
	require.NoError(t, err)
	assert.Equal(t, "bd-77", id)
}

func TestCreateIssueSurfacesTrackerFailure(t *testing.T) {
	fake := &fakeCommander{err: errors.New("exit status 1: workspace not initialized")}
	c := New(fake, "bd")

	_, err := c.CreateIssue("Title here", models.TypeTask, 2, "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace not initialized")
}

func TestCreateIssueRejectsOversizedBodyBeforeSpawning(t *testing.T) {
	fake := &fakeCommander{out: "bd-1"}
	c := New(fake, "bd")

	huge := strings.Repeat("x", MaxDescriptionBytes+1)
	_, err := c.CreateIssue("Title here", models.TypeTask, 2, huge)

	require.ErrorIs(t, err, ErrDescriptionTooLarge)
	assert.False(t, fake.called, "no external call may be attempted for oversized bodies")
}

func TestCreateIssueBodyAtLimitIsAccepted(t *testing.T) {
	fake := &fakeCommander{out: "bd-2"}
	c := New(fake, "bd")

	exact := strings.Repeat("x", MaxDescriptionBytes)
	id, err := c.CreateIssue("Title here", models.TypeTask, 2, exact)
	require.NoError(t, err)
	assert.Equal(t, "bd-2", id)
}

func TestCreateIssueEmptyOutputIsAnError(t *testing.T) {
	fake := &fakeCommander{out: "   "}
	c := New(fake, "bd")

	_, err := c.CreateIssue("Title here", models.TypeTask, 2, "body")
	require.ErrorIs(t, err, ErrEmptyIssueID)
}
