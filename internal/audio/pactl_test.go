package audio

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

const sinksJSON = `[
  {"name": "alsa_output.pci-0000_00_1f.3.analog-stereo", "description": "Built-in Audio Analog Stereo"},
  {"name": "bluez_output.AA_BB_CC_DD_EE_FF.1", "description": "WH-1000XM4"}
]`

func TestParseSinks(t *testing.T) {
	got, err := parseSinks(sinksJSON, "bluez_output.AA_BB_CC_DD_EE_FF.1")
	if err != nil {
		t.Fatalf("parseSinks failed: %v", err)
	}

	want := DeviceList{
		{Index: 1, Name: "Built-in Audio Analog Stereo", sysName: "alsa_output.pci-0000_00_1f.3.analog-stereo"},
		{Index: 2, Name: "WH-1000XM4", Default: true, sysName: "bluez_output.AA_BB_CC_DD_EE_FF.1"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Device{})); diff != "" {
		t.Errorf("sink list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSinksGarbage(t *testing.T) {
	if _, err := parseSinks("Connection failure: Connection refused", ""); err == nil {
		t.Error("expected error for non-JSON output")
	}
}

func TestParseSinkVolume(t *testing.T) {
	out := "Volume: front-left: 39322 /  60% / -13.28 dB,   front-right: 39322 /  60% / -13.28 dB"
	got, err := parseSinkVolume(out)
	if err != nil {
		t.Fatalf("parseSinkVolume failed: %v", err)
	}
	if got != 60 {
		t.Errorf("parseSinkVolume = %d, want 60", got)
	}

	if _, err := parseSinkVolume("Volume: (unknown)"); err == nil {
		t.Error("expected error when no percentage present")
	}
}

func TestPactlDevices(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{
		{out: sinksJSON},
		{out: "alsa_output.pci-0000_00_1f.3.analog-stereo\n"},
	}}
	p := NewPactl(r, zap.NewNop())

	got, err := p.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices failed: %v", err)
	}
	if len(got) != 2 || !got[0].Default {
		t.Errorf("devices = %+v, want built-in sink marked default", got)
	}
}

func TestPactlSetVolume(t *testing.T) {
	r := &fakeRunner{results: []fakeResult{{out: ""}}}
	p := NewPactl(r, zap.NewNop())

	dev := &Device{Index: 2, Name: "WH-1000XM4", sysName: "bluez_output.AA_BB_CC_DD_EE_FF.1"}
	if err := p.SetVolume(context.Background(), dev, 85); err != nil {
		t.Fatalf("SetVolume failed: %v", err)
	}

	args := r.calls[0].Args
	want := []string{"set-sink-volume", "bluez_output.AA_BB_CC_DD_EE_FF.1", "85%"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("pactl args mismatch (-want +got):\n%s", diff)
	}

	// nil device targets the default sink symbol.
	r.results = []fakeResult{{out: ""}}
	if err := p.SetVolume(context.Background(), nil, 10); err != nil {
		t.Fatalf("SetVolume(nil) failed: %v", err)
	}
	if r.calls[1].Args[1] != defaultSink {
		t.Errorf("default set targeted %q, want %q", r.calls[1].Args[1], defaultSink)
	}
}
