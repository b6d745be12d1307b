//go:build linux

package clipboard

import (
	"errors"
	"os"
)

// newPlatformSink picks a mechanism from the session environment. WSL and
// Wayland need external commands; plain X11 goes through the native bindings.
func newPlatformSink() (Sink, error) {
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return &commandSink{env: "WSL", path: "/mnt/c/Windows/System32/clip.exe"}, nil
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return &commandSink{env: "Wayland", path: "/usr/bin/wl-copy"}, nil
	}
	if os.Getenv("DISPLAY") != "" {
		return &nativeSink{env: "Xorg"}, nil
	}
	return nil, errors.New("unsupported Linux environment (no WAYLAND_DISPLAY or DISPLAY)")
}
