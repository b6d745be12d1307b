package clipboard

import (
	"os/exec"
	"testing"
)

func TestCommandSink_Deliver(t *testing.T) {
	path, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not available")
	}

	s := &commandSink{env: "test", path: path}
	if err := s.Deliver("hello clipboard"); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
}

func TestCommandSink_DeliverMissingBinary(t *testing.T) {
	s := &commandSink{env: "test", path: "/nonexistent/copy-command"}
	if err := s.Deliver("hello"); err == nil {
		t.Fatal("expected error for missing copy command")
	}
}
