//go:build !windows

package audio

import "go.uber.org/zap"

// Native reports that no native backend exists off Windows; callers
// fall back to the scripted backend for the platform.
func Native(log *zap.Logger) (Backend, bool) {
	return nil, false
}
