package shell

import (
	"strings"
	"testing"
)

func TestRunTrimsStdout(t *testing.T) {
	c := &ShellCommander{}
	out, err := c.Run("sh", "-c", "printf ' hello \\n'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Errorf("got %q, want %q", out, "hello")
	}
}

func TestRunFoldsStderrIntoError(t *testing.T) {
	c := &ShellCommander{}
	_, err := c.Run("sh", "-c", "echo broken pipe >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "broken pipe") {
		t.Errorf("error should carry stderr, got: %v", err)
	}
}

func TestRunInDir(t *testing.T) {
	dir := t.TempDir()
	c := &ShellCommander{}
	out, err := c.RunInDir(dir, "pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// TempDir may be reached through a symlink, so only check for output.
	if out == "" {
		t.Errorf("pwd in %s returned empty output", dir)
	}
}

func TestIsInstalled(t *testing.T) {
	if !IsInstalled("sh") {
		t.Error("sh should be installed")
	}
	if IsInstalled("definitely-not-a-real-binary-name") {
		t.Error("nonexistent binary reported as installed")
	}
}
