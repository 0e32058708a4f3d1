package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"speakerup/cmd/speakerup/menu"
	"speakerup/cmd/speakerup/ui"
	"speakerup/internal/audio"
	"speakerup/internal/config"
	"speakerup/internal/logging"
	"speakerup/internal/shell"
)

var (
	// Root flags, kept compatible with the historical interface.
	flagVolume      int
	flagDevice      int
	flagList        bool
	flagInteractive bool
	flagCraze       bool

	// Global flags
	verbose     bool
	configPath  string
	flagTimeout time.Duration

	logger      *zap.Logger
	cfg         config.Config
	styles      ui.Styles
	stylesReady bool
)

// rootCmd represents the base command. Run without arguments it starts
// the interactive menu.
var rootCmd = &cobra.Command{
	Use:   "speakerup",
	Short: "Control speaker volume and select audio devices",
	Long: `speakerup lists the operating system's playback devices and sets
their volume through the platform's audio scripting interface.

Examples:
  speakerup                 # interactive menu
  speakerup -v 50           # set default device to 50%
  speakerup -l              # list playback devices
  speakerup -d 1 -v 75      # set device 1 to 75%
  speakerup -c              # CRAZE mode - set any volume!`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func setup() error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	var err error
	if cfg, err = config.Load(path); err != nil {
		return err
	}

	if logger, err = logging.New(verbose || cfg.Logging.Verbose); err != nil {
		return err
	}

	theme := ui.DetectTheme()
	if cfg.DarkMode {
		theme = ui.DarkTheme()
	}
	styles = ui.NewStyles(theme)
	stylesReady = true
	return nil
}

// newBackend wires the runner and picks a backend: config override
// first, then the native backend where one exists, then the scripted
// backend for the platform.
func newBackend(cmd *cobra.Command) (audio.Backend, error) {
	runner := shell.NewExecRunner(logger)
	if cmd.Flags().Changed("timeout") {
		runner.Timeout = flagTimeout
	} else {
		runner.Timeout = cfg.ShellTimeout()
	}

	if cfg.Backend != "" {
		return audio.ByName(cfg.Backend, runner, logger)
	}
	if b, ok := audio.Native(logger); ok {
		return b, nil
	}
	return audio.ForPlatform(runtime.GOOS, runner, logger)
}

func runInteractive(craze bool) error {
	backend, err := newBackend(rootCmd)
	if err != nil {
		return err
	}
	return menu.Run(backend, styles, logger, craze)
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle between rootCmd and runInteractive.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case flagList:
			return runList(cmd)
		case flagCraze:
			return runInteractive(true)
		case cmd.Flags().Changed("volume"):
			if cmd.Flags().Changed("device") {
				return runSet(cmd, flagVolume, flagDevice, true)
			}
			return runSet(cmd, flagVolume, 0, false)
		case cmd.Flags().Changed("device"):
			return fmt.Errorf("--device requires --volume")
		default:
			// -i and the bare invocation both land here.
			return runInteractive(false)
		}
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", shell.DefaultTimeout, "per-command shell timeout")

	rootCmd.Flags().IntVarP(&flagVolume, "volume", "v", 0, "set volume level (0-100)")
	rootCmd.Flags().IntVarP(&flagDevice, "device", "d", 0, "device index (use -l to list devices)")
	rootCmd.Flags().BoolVarP(&flagList, "list", "l", false, "list available audio devices")
	rootCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "launch interactive mode (default if no args)")
	rootCmd.Flags().BoolVarP(&flagCraze, "craze", "c", false, "CRAZE mode - set any volume that works for you")

	rootCmd.AddCommand(listCmd, setCmd, getCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		errStyles := styles
		if !stylesReady {
			errStyles = ui.NewStyles(ui.DetectTheme())
		}
		fmt.Fprintln(os.Stderr, errStyles.Error.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
