package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speakerup/internal/audio"
	"speakerup/internal/volume"
)

var setDeviceIndex int

// listCmd prints the playback device table.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available audio devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd)
	},
}

// setCmd sets a volume level, optionally on a specific device.
var setCmd = &cobra.Command{
	Use:   "set LEVEL",
	Short: "Set the volume of the default or a selected device",
	Long: `Sets the volume (0-100) of the default playback device, or of the
device selected with --device using the index shown by "speakerup list".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := volume.Parse(args[0])
		if err != nil {
			return err
		}
		return runSet(cmd, int(level), setDeviceIndex, cmd.Flags().Changed("device"))
	},
}

// getCmd prints the current volume of the default device.
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current volume of the default device",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend(cmd)
		if err != nil {
			return err
		}
		level, err := backend.Volume(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(styles.Success.Render(fmt.Sprintf("Volume: %d%%", int(level))))
		return nil
	},
}

func init() {
	setCmd.Flags().IntVarP(&setDeviceIndex, "device", "d", 0, "device index (use list to see indices)")
}

func runList(cmd *cobra.Command) error {
	backend, err := newBackend(cmd)
	if err != nil {
		return err
	}
	devices, err := backend.Devices(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(styles.RenderDeviceList(devices))
	return nil
}

// runSet applies a volume level. Without haveOrdinal the default
// device is targeted; with it, ordinal is resolved against a fresh
// enumeration. Indices are 1-based, so an explicit 0 is rejected up
// front rather than silently falling back to the default device.
func runSet(cmd *cobra.Command, rawLevel, ordinal int, haveOrdinal bool) error {
	level, err := volume.New(rawLevel)
	if err != nil {
		return err
	}
	if haveOrdinal && ordinal < 1 {
		return fmt.Errorf("invalid device index %d (indices start at 1)", ordinal)
	}

	backend, err := newBackend(cmd)
	if err != nil {
		return err
	}

	var target *audio.Device
	if haveOrdinal {
		devices, err := backend.Devices(cmd.Context())
		if err != nil {
			return err
		}
		if target, err = devices.ByIndex(ordinal); err != nil {
			return err
		}
	}

	if err := backend.SetVolume(cmd.Context(), target, level); err != nil {
		return err
	}

	name := "Default Device"
	if target != nil {
		name = target.Name
	}
	logger.Debug("volume applied",
		zap.String("device", name),
		zap.Int("level", int(level)),
		zap.String("backend", backend.Name()))
	fmt.Println(styles.Success.Render(fmt.Sprintf("✓ Volume set to %d%% for %s", int(level), name)))
	return nil
}
