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

// listDevicesScript enumerates playback devices through the
// AudioDeviceCmdlets module as JSON.
const listDevicesScript = `Get-AudioDevice -List | Where-Object {$_.Type -eq "Playback"} |
Select-Object Index, Name, Default | ConvertTo-Json`

// coreAudioTypeScript compiles an [Audio] helper over the Core Audio
// COM interfaces so master volume can be read and written as a scalar
// without any module dependency.
const coreAudioTypeScript = `Add-Type -TypeDefinition '
using System.Runtime.InteropServices;
[Guid("5CDF2C82-841E-4546-9722-0CF74078229A"), InterfaceType(ComInterfaceType.InterfaceIsIUnknown)]
interface IAudioEndpointVolume {
    int f(); int g(); int h(); int i();
    int SetMasterVolumeLevelScalar(float fLevel, System.Guid pguidEventContext);
    int j(); int k(); int l(); int m(); int n();
    int GetMasterVolumeLevelScalar(out float pfLevel);
}
[Guid("D666063F-1587-4E43-81F1-B948E807363F"), InterfaceType(ComInterfaceType.InterfaceIsIUnknown)]
interface IMMDevice {
    int Activate(ref System.Guid id, int clsCtx, int activationParams, out IAudioEndpointVolume aev);
}
[Guid("A95664D2-9614-4F35-A746-DE8DB63617E6"), InterfaceType(ComInterfaceType.InterfaceIsIUnknown)]
interface IMMDeviceEnumerator {
    int f(); int GetDefaultAudioEndpoint(int dataFlow, int role, out IMMDevice endpoint);
}
[ComImport, Guid("BCDE0395-E52F-467C-8E3D-C4579291692E")] class MMDeviceEnumeratorComObject { }
public class Audio {
    static IAudioEndpointVolume Vol() {
        var enumerator = new MMDeviceEnumeratorComObject() as IMMDeviceEnumerator;
        IMMDevice dev = null;
        Marshal.ThrowExceptionForHR(enumerator.GetDefaultAudioEndpoint(0, 0, out dev));
        IAudioEndpointVolume epv = null;
        var epvid = typeof(IAudioEndpointVolume).GUID;
        Marshal.ThrowExceptionForHR(dev.Activate(ref epvid, 23, 0, out epv));
        return epv;
    }
    public static float Volume {
        get { float v = -1; Marshal.ThrowExceptionForHR(Vol().GetMasterVolumeLevelScalar(out v)); return v; }
        set { Marshal.ThrowExceptionForHR(Vol().SetMasterVolumeLevelScalar(value, System.Guid.Empty)); }
    }
}
'`

const fallbackDeviceName = "Default Audio Device"

// PowerShell is the Windows scripted backend. Enumeration needs the
// AudioDeviceCmdlets module; volume control does not and keeps working
// through the COM helper when the module is absent.
type PowerShell struct {
	run shell.Runner
	log *zap.Logger
}

func NewPowerShell(r shell.Runner, log *zap.Logger) *PowerShell {
	return &PowerShell{run: r, log: log.Named("powershell")}
}

func (p *PowerShell) Name() string { return "powershell" }

func (p *PowerShell) Devices(ctx context.Context) (DeviceList, error) {
	res, err := p.run.Run(ctx, p.command(listDevicesScript))
	if err != nil {
		p.log.Warn("device enumeration failed, using fallback entry", zap.Error(err))
		return fallbackDevices(), nil
	}

	devices, err := parsePlaybackDevices(res.Stdout)
	if err != nil {
		p.log.Warn("device enumeration output unreadable, using fallback entry", zap.Error(err))
		return fallbackDevices(), nil
	}
	return devices, nil
}

func (p *PowerShell) SetVolume(ctx context.Context, dev *Device, level volume.Level) error {
	if dev != nil && dev.synthetic {
		if !dev.Default {
			return fmt.Errorf("device %q cannot be addressed by index", dev.Name)
		}
		dev = nil
	}

	var script string
	if dev == nil {
		script = fmt.Sprintf("%s\n[Audio]::Volume = %.2f\n", coreAudioTypeScript, level.Scalar())
	} else {
		script = fmt.Sprintf(`$device = Get-AudioDevice -Index %d
if (-not $device) {
    Write-Error "no audio device at index %d"
    exit 1
}
Set-AudioDevice -Index %d | Out-Null
%s
[Audio]::Volume = %.2f
`, dev.sysIndex, dev.sysIndex, dev.sysIndex, coreAudioTypeScript, level.Scalar())
	}

	if _, err := p.run.Run(ctx, p.command(script)); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}
	return nil
}

func (p *PowerShell) Volume(ctx context.Context) (volume.Level, error) {
	script := coreAudioTypeScript + "\n[Audio]::Volume\n"
	res, err := p.run.Run(ctx, p.command(script))
	if err != nil {
		return 0, fmt.Errorf("get volume: %w", err)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(res.Stdout), 64)
	if err != nil {
		return 0, fmt.Errorf("get volume: unexpected output %q", strings.TrimSpace(res.Stdout))
	}
	return volume.FromScalar(f), nil
}

func (p *PowerShell) command(script string) shell.Command {
	return shell.Command{Binary: "powershell", Args: []string{"-NoProfile", "-Command", script}}
}

// psDevice mirrors the Select-Object projection in listDevicesScript.
type psDevice struct {
	Index   int    `json:"Index"`
	Name    string `json:"Name"`
	Default bool   `json:"Default"`
}

// parsePlaybackDevices decodes ConvertTo-Json output. A single device
// serializes as a bare object rather than a one-element array.
func parsePlaybackDevices(out string) (DeviceList, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}

	var raw []psDevice
	if strings.HasPrefix(out, "{") {
		var one psDevice
		if err := json.Unmarshal([]byte(out), &one); err != nil {
			return nil, fmt.Errorf("parse device JSON: %w", err)
		}
		raw = []psDevice{one}
	} else {
		if err := json.Unmarshal([]byte(out), &raw); err != nil {
			return nil, fmt.Errorf("parse device JSON: %w", err)
		}
	}

	devices := make(DeviceList, 0, len(raw))
	for i, d := range raw {
		devices = append(devices, Device{
			Index:    i + 1,
			Name:     d.Name,
			Default:  d.Default,
			sysIndex: d.Index,
		})
	}
	return devices, nil
}

func fallbackDevices() DeviceList {
	return DeviceList{{
		Index:     1,
		Name:      fallbackDeviceName,
		Default:   true,
		synthetic: true,
	}}
}
