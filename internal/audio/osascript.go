package audio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"speakerup/internal/shell"
	"speakerup/internal/volume"
)

// Osascript is the macOS backend. AppleScript only exposes the system
// output as a whole, so enumeration reports a single default device.
type Osascript struct {
	run shell.Runner
	log *zap.Logger
}

func NewOsascript(r shell.Runner, log *zap.Logger) *Osascript {
	return &Osascript{run: r, log: log.Named("osascript")}
}

func (o *Osascript) Name() string { return "osascript" }

func (o *Osascript) Devices(ctx context.Context) (DeviceList, error) {
	return DeviceList{{
		Index:     1,
		Name:      "System Output",
		Default:   true,
		synthetic: true,
	}}, nil
}

func (o *Osascript) SetVolume(ctx context.Context, dev *Device, level volume.Level) error {
	if dev != nil && !dev.Default {
		return fmt.Errorf("device %q cannot be addressed on this platform", dev.Name)
	}
	script := fmt.Sprintf("set volume output volume %d", int(level))
	if _, err := o.run.Run(ctx, o.command(script)); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	return nil
}

func (o *Osascript) Volume(ctx context.Context) (volume.Level, error) {
	res, err := o.run.Run(ctx, o.command("output volume of (get volume settings)"))
	if err != nil {
		return 0, fmt.Errorf("get volume: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(res.Stdout))
	if err != nil {
		return 0, fmt.Errorf("get volume: unexpected output %q", strings.TrimSpace(res.Stdout))
	}
	return volume.New(n)
}

func (o *Osascript) command(script string) shell.Command {
	return shell.Command{Binary: "osascript", Args: []string{"-e", script}}
}
