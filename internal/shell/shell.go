// Package shell provides a thin wrapper around external process invocation.
// Both the validation bridge and the issue-tracker client talk to their
// tools through the Commander interface so tests can inject fakes.
package shell

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Commander is an interface for executing commands.
type Commander interface {
	Run(name string, args ...string) (string, error)
	RunInDir(dir, name string, args ...string) (string, error)
}

// ShellCommander executes real shell commands.
type ShellCommander struct{}

// Run executes a command in the current directory.
func (c *ShellCommander) Run(name string, args ...string) (string, error) {
	return c.RunInDir("", name, args...)
}

// RunInDir executes a command in the specified directory. On a non-zero
// exit the captured stderr is folded into the returned error.
func (c *ShellCommander) RunInDir(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return "", fmt.Errorf("%w: %s", err, errMsg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsInstalled checks if a binary is available in PATH.
func IsInstalled(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
