// Package tracker submits accepted work items to the external issue
// tracker via its CLI. The tracker's only observable output is its exit
// status and, on success, a line of text treated as the created issue id.
package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/planforge/planforge/internal/shell"
	"github.com/planforge/planforge/models"
)

// DefaultBinary is the issue-tracker CLI used when none is configured.
const DefaultBinary = "bd"

// MaxDescriptionBytes caps the submitted body size. Oversized bodies are
// rejected before any external call is made.
const MaxDescriptionBytes = 1 << 20

// Errors surfaced by the tracker client.
var (
	ErrDescriptionTooLarge = errors.New("description exceeds maximum size")
	ErrEmptyIssueID        = errors.New("tracker returned no issue id")
)

// Client drives the tracker CLI through a Commander.
type Client struct {
	runner shell.Commander
	binary string
}

// New creates a tracker client. An empty binary falls back to DefaultBinary.
func New(runner shell.Commander, binary string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{runner: runner, binary: binary}
}

// CreateIssue submits one issue and returns the external id the tracker
// reports on its first output line.
func (c *Client) CreateIssue(title string, issueType models.TaskType, priority int, description string) (string, error) {
	if len(description) > MaxDescriptionBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrDescriptionTooLarge, len(description), MaxDescriptionBytes)
	}

	out, err := c.runner.Run(c.binary, "create", title,
		"--type", string(issueType),
		"--priority", strconv.Itoa(priority),
		"--description", description,
	)
	if err != nil {
		return "", fmt.Errorf("%s create failed: %w", c.binary, err)
	}

	id := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	if id == "" {
		return "", ErrEmptyIssueID
	}
	return id, nil
}

// IsInstalled checks whether the tracker CLI is reachable.
func (c *Client) IsInstalled() bool {
	return shell.IsInstalled(c.binary)
}
