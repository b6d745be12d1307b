// Package clipboard binds the platform-specific mechanism that places text
// on the local clipboard. The relay session only sees the Sink interface.
package clipboard

import (
	"fmt"

	atotto "github.com/atotto/clipboard"
)

// Sink makes text the content of the local clipboard. Implementations must
// tolerate arbitrary text bytes and be invokable many times per process
// lifetime without leaking OS resources.
type Sink interface {
	Deliver(text string) error
}

// New selects the Sink for the current platform. Selection happens once at
// startup; an environment with no usable clipboard mechanism is an error
// here, not a per-message error.
func New() (Sink, error) {
	return newPlatformSink()
}

// nativeSink writes through the atotto clipboard bindings (xclip/xsel on
// X11, pasteboard on macOS, the win32 clipboard on Windows).
type nativeSink struct {
	env string
}

func (s *nativeSink) Deliver(text string) error {
	if err := atotto.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write (%s): %w", s.env, err)
	}
	return nil
}
