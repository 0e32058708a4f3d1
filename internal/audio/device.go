// Package audio models playback devices and the per-platform backends
// that enumerate them and set their volume through the operating
// system's audio scripting interface.
package audio

import (
	"fmt"
)

// Device is one playback device from a single enumeration. Index is a
// 1-based ordinal that is only meaningful against the DeviceList that
// produced it.
type Device struct {
	Index   int
	Name    string
	Default bool

	// sysIndex is the backend's own device identifier (the
	// AudioDeviceCmdlets index on Windows, the sink name on Linux).
	sysIndex int
	sysName  string

	// synthetic marks the placeholder entry used when real enumeration
	// is unavailable. Per-index selection is rejected for it.
	synthetic bool
}

// DeviceList is an ordered enumeration of playback devices.
type DeviceList []Device

// ByIndex resolves a 1-based ordinal against this enumeration.
func (l DeviceList) ByIndex(n int) (*Device, error) {
	if n < 1 || n > len(l) {
		return nil, fmt.Errorf("no device with index %d (have %d devices)", n, len(l))
	}
	d := l[n-1]
	return &d, nil
}

// Default returns the default playback device, or nil if the
// enumeration did not mark one.
func (l DeviceList) Default() *Device {
	for i := range l {
		if l[i].Default {
			d := l[i]
			return &d
		}
	}
	return nil
}
