package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"speakerup/internal/shell"
	"speakerup/internal/volume"
)

// defaultSink is pactl's symbolic name for the default output.
const defaultSink = "@DEFAULT_SINK@"

// Pactl is the Linux backend over the PulseAudio / PipeWire command
// line client.
type Pactl struct {
	run shell.Runner
	log *zap.Logger
}

func NewPactl(r shell.Runner, log *zap.Logger) *Pactl {
	return &Pactl{run: r, log: log.Named("pactl")}
}

func (p *Pactl) Name() string { return "pactl" }

func (p *Pactl) Devices(ctx context.Context) (DeviceList, error) {
	res, err := p.run.Run(ctx, shell.Command{
		Binary: "pactl",
		Args:   []string{"--format=json", "list", "sinks"},
	})
	if err != nil {
		return nil, fmt.Errorf("list sinks: %w", err)
	}

	def := ""
	if dres, derr := p.run.Run(ctx, shell.Command{
		Binary: "pactl",
		Args:   []string{"get-default-sink"},
	}); derr == nil {
		def = strings.TrimSpace(dres.Stdout)
	} else {
		p.log.Warn("default sink lookup failed", zap.Error(derr))
	}

	return parseSinks(res.Stdout, def)
}

func (p *Pactl) SetVolume(ctx context.Context, dev *Device, level volume.Level) error {
	sink := defaultSink
	if dev != nil && dev.sysName != "" {
		sink = dev.sysName
	}
	_, err := p.run.Run(ctx, shell.Command{
		Binary: "pactl",
		Args:   []string{"set-sink-volume", sink, fmt.Sprintf("%d%%", int(level))},
	})
	if err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	return nil
}

func (p *Pactl) Volume(ctx context.Context) (volume.Level, error) {
	res, err := p.run.Run(ctx, shell.Command{
		Binary: "pactl",
		Args:   []string{"get-sink-volume", defaultSink},
	})
	if err != nil {
		return 0, fmt.Errorf("get volume: %w", err)
	}
	return parseSinkVolume(res.Stdout)
}

// pactlSink is the subset of `pactl --format=json list sinks` output
// this program reads.
type pactlSink struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func parseSinks(out, defaultName string) (DeviceList, error) {
	var sinks []pactlSink
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &sinks); err != nil {
		return nil, fmt.Errorf("parse sink JSON: %w", err)
	}

	devices := make(DeviceList, 0, len(sinks))
	for i, s := range sinks {
		name := s.Description
		if name == "" {
			name = s.Name
		}
		devices = append(devices, Device{
			Index:   i + 1,
			Name:    name,
			Default: s.Name == defaultName,
			sysName: s.Name,
		})
	}
	return devices, nil
}

// parseSinkVolume extracts the first percentage from output like
// "Volume: front-left: 39322 /  60% / -13.28 dB, front-right: ...".
func parseSinkVolume(out string) (volume.Level, error) {
	for _, field := range strings.Fields(out) {
		if !strings.HasSuffix(field, "%") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(field, "%"))
		if err != nil {
			continue
		}
		return volume.Clamp(n), nil
	}
	return 0, fmt.Errorf("get volume: no percentage in %q", strings.TrimSpace(out))
}
