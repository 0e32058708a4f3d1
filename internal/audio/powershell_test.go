package audio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"speakerup/internal/volume"
)

func TestParsePlaybackDevicesArray(t *testing.T) {
	out := `[
  {"Index": 1, "Name": "Speakers (Realtek High Definition Audio)", "Default": true},
  {"Index": 3, "Name": "Headphones (USB Audio)", "Default": false}
]`
	got, err := parsePlaybackDevices(out)
	if err != nil {
		t.Fatalf("parsePlaybackDevices failed: %v", err)
	}

	want := DeviceList{
		{Index: 1, Name: "Speakers (Realtek High Definition Audio)", Default: true, sysIndex: 1},
		{Index: 2, Name: "Headphones (USB Audio)", Default: false, sysIndex: 3},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Device{})); diff != "" {
		t.Errorf("device list mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePlaybackDevicesSingleObject(t *testing.T) {
	// ConvertTo-Json drops the array wrapper for a single element.
	out := `{"Index": 2, "Name": "Speakers", "Default": true}`
	got, err := parsePlaybackDevices(out)
	if err != nil {
		t.Fatalf("parsePlaybackDevices failed: %v", err)
	}
	if len(got) != 1 || got[0].Index != 1 || got[0].sysIndex != 2 {
		t.Errorf("got %+v, want one device with ordinal 1 and system index 2", got)
	}
}

func TestParsePlaybackDevicesEmpty(t *testing.T) {
	got, err := parsePlaybackDevices("   \n")
	if err != nil {
		t.Fatalf("parsePlaybackDevices failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d devices, want 0", len(got))
	}
}

func TestParsePlaybackDevicesGarbage(t *testing.T) {
	if _, err := parsePlaybackDevices("Get-AudioDevice : not recognized"); err == nil {
		t.Error("expected error for non-JSON output")
	}
}

func TestPowerShellDevicesFallback(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{err: errors.New("powershell not found")}}}
	p := NewPowerShell(r, zap.NewNop())

	got, err := p.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != fallbackDeviceName || !got[0].Default {
		t.Errorf("fallback list = %+v", got)
	}

	// Fallback entries may only be addressed as the default device.
	r.results = []fakeResult{{out: ""}}
	if err := p.SetVolume(context.Background(), &got[0], 40); err != nil {
		t.Errorf("SetVolume on fallback default failed: %v", err)
	}
}

func TestPowerShellSetVolumeDefault(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{out: ""}}}
	p := NewPowerShell(r, zap.NewNop())

	if err := p.SetVolume(context.Background(), nil, 65); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected one shell call, got %d", len(r.calls))
	}

	script := r.calls[0].Args[len(r.calls[0].Args)-1]
	if !strings.Contains(script, "[Audio]::Volume = 0.65") {
		t.Errorf("script does not set scalar 0.65:\n%s", script)
	}
	if strings.Contains(script, "Get-AudioDevice -Index") {
		t.Error("default-device script should not select by index")
	}
}

func TestPowerShellSetVolumeByIndex(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{out: ""}}}
	p := NewPowerShell(r, zap.NewNop())

	dev := &Device{Index: 2, Name: "Headphones", sysIndex: 3}
	if err := p.SetVolume(context.Background(), dev, 100); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}

	script := r.calls[0].Args[len(r.calls[0].Args)-1]
	if !strings.Contains(script, "Get-AudioDevice -Index 3") {
		t.Errorf("script does not select system index 3:\n%s", script)
	}
	if !strings.Contains(script, "[Audio]::Volume = 1.00") {
		t.Errorf("script does not set scalar 1.00:\n%s", script)
	}
}

func TestPowerShellVolume(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{out: "0.37\r\n"}}}
	p := NewPowerShell(r, zap.NewNop())

	got, err := p.Volume(context.Background())
	if err != nil {
		t.Fatalf("Volume failed: %v", err)
	}
	if got != volume.Level(37) {
		t.Errorf("Volume() = %d, want 37", got)
	}

	r.results = []fakeResult{{out: "not a number"}}
	if _, err := p.Volume(context.Background()); err == nil {
		t.Error("expected error for unparseable volume output")
	}
}
