package clipboard

import (
	"fmt"
	"os/exec"
	"strings"
)

// commandSink pipes text to an external copy command's stdin. Used where the
// native bindings have no support (WSL's clip.exe, Wayland's wl-copy).
type commandSink struct {
	env  string
	path string
}

func (s *commandSink) Deliver(text string) error {
	cmd := exec.Command(s.path)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s): %w", s.path, s.env, err)
	}
	return nil
}
