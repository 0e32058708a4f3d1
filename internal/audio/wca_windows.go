//go:build windows

package audio

import (
	"context"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
	"go.uber.org/zap"

	"speakerup/internal/volume"
)

// WCA is the native Windows backend over the Core Audio COM API. It
// avoids the PowerShell round trip and works without the
// AudioDeviceCmdlets module.
type WCA struct {
	log *zap.Logger
}

func NewWCA(log *zap.Logger) *WCA {
	return &WCA{log: log.Named("wca")}
}

// Native returns the Core Audio backend on Windows.
func Native(log *zap.Logger) (Backend, bool) {
	if log == nil {
		log = zap.NewNop()
	}
	return NewWCA(log), true
}

func (w *WCA) Name() string { return "wca" }

func (w *WCA) Devices(ctx context.Context) (DeviceList, error) {
	var devices DeviceList
	err := w.withEnumerator(func(mmde *wca.IMMDeviceEnumerator) error {
		var mmdc *wca.IMMDeviceCollection
		if err := mmde.EnumAudioEndpoints(wca.ERender, wca.DEVICE_STATE_ACTIVE, &mmdc); err != nil {
			return fmt.Errorf("enumerate endpoints: %w", err)
		}
		defer mmdc.Release()

		defaultID := ""
		var def *wca.IMMDevice
		if err := mmde.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &def); err == nil {
			_ = def.GetId(&defaultID)
			def.Release()
		}

		var count uint32
		if err := mmdc.GetCount(&count); err != nil {
			return fmt.Errorf("count endpoints: %w", err)
		}

		for i := uint32(0); i < count; i++ {
			var mmd *wca.IMMDevice
			if err := mmdc.Item(i, &mmd); err != nil {
				return fmt.Errorf("endpoint %d: %w", i, err)
			}

			var id string
			_ = mmd.GetId(&id)
			name := friendlyName(mmd)
			mmd.Release()

			devices = append(devices, Device{
				Index:   int(i) + 1,
				Name:    name,
				Default: id != "" && id == defaultID,
				sysName: id,
			})
		}
		return nil
	})
	return devices, err
}

func (w *WCA) SetVolume(ctx context.Context, dev *Device, level volume.Level) error {
	return w.withEnumerator(func(mmde *wca.IMMDeviceEnumerator) error {
		mmd, err := w.endpoint(mmde, dev)
		if err != nil {
			return err
		}
		defer mmd.Release()

		var aev *wca.IAudioEndpointVolume
		if err := mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
			return fmt.Errorf("activate endpoint volume: %w", err)
		}
		defer aev.Release()

		if err := aev.SetMasterVolumeLevelScalar(float32(level.Scalar()), nil); err != nil {
			return fmt.Errorf("set master volume: %w", err)
		}
		return nil
	})
}

func (w *WCA) Volume(ctx context.Context) (volume.Level, error) {
	var level volume.Level
	err := w.withEnumerator(func(mmde *wca.IMMDeviceEnumerator) error {
		mmd, err := w.endpoint(mmde, nil)
		if err != nil {
			return err
		}
		defer mmd.Release()

		var aev *wca.IAudioEndpointVolume
		if err := mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
			return fmt.Errorf("activate endpoint volume: %w", err)
		}
		defer aev.Release()

		var v float32
		if err := aev.GetMasterVolumeLevelScalar(&v); err != nil {
			return fmt.Errorf("get master volume: %w", err)
		}
		level = volume.FromScalar(float64(v))
		return nil
	})
	return level, err
}

// endpoint resolves dev to an IMMDevice. A nil or default dev maps to
// the default render endpoint; otherwise the device ID recorded at
// enumeration time is looked up again.
func (w *WCA) endpoint(mmde *wca.IMMDeviceEnumerator, dev *Device) (*wca.IMMDevice, error) {
	if dev == nil || dev.sysName == "" {
		var mmd *wca.IMMDevice
		if err := mmde.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &mmd); err != nil {
			return nil, fmt.Errorf("default endpoint: %w", err)
		}
		return mmd, nil
	}

	var mmd *wca.IMMDevice
	if err := mmde.GetDevice(dev.sysName, &mmd); err != nil {
		return nil, fmt.Errorf("device %q no longer present: %w", dev.Name, err)
	}
	return mmd, nil
}

func (w *WCA) withEnumerator(fn func(*wca.IMMDeviceEnumerator) error) error {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return fmt.Errorf("initialize COM: %w", err)
	}
	defer ole.CoUninitialize()

	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		return fmt.Errorf("create device enumerator: %w", err)
	}
	defer mmde.Release()

	return fn(mmde)
}

func friendlyName(mmd *wca.IMMDevice) string {
	var ps *wca.IPropertyStore
	if err := mmd.OpenPropertyStore(wca.STGM_READ, &ps); err != nil {
		return ""
	}
	defer ps.Release()

	var pv wca.PROPVARIANT
	if err := ps.GetValue(&wca.PKEY_Device_FriendlyName, &pv); err != nil {
		return ""
	}
	return pv.String()
}
