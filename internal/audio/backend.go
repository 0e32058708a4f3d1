package audio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"speakerup/internal/shell"
	"speakerup/internal/volume"
)

// Backend talks to one platform audio scripting interface. A nil device
// passed to SetVolume targets the default playback device.
type Backend interface {
	Name() string
	Devices(ctx context.Context) (DeviceList, error)
	SetVolume(ctx context.Context, dev *Device, level volume.Level) error
	Volume(ctx context.Context) (volume.Level, error)
}

// ForPlatform selects the scripted backend for a GOOS value. All
// backends compile everywhere; only execution is platform-bound.
func ForPlatform(goos string, r shell.Runner, log *zap.Logger) (Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch goos {
	case "windows":
		return NewPowerShell(r, log), nil
	case "darwin":
		return NewOsascript(r, log), nil
	case "linux":
		return NewPactl(r, log), nil
	default:
		return nil, fmt.Errorf("no audio backend for %s", goos)
	}
}

// ByName resolves a backend by its configured name, for the config
// override path.
func ByName(name string, r shell.Runner, log *zap.Logger) (Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch name {
	case "powershell":
		return NewPowerShell(r, log), nil
	case "osascript":
		return NewOsascript(r, log), nil
	case "pactl":
		return NewPactl(r, log), nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q", name)
	}
}
