//go:build !linux

package clipboard

import "runtime"

func newPlatformSink() (Sink, error) {
	return &nativeSink{env: runtime.GOOS}, nil
}
