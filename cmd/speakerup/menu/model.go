// Package menu provides the interactive volume-control interface.
// The loop mirrors the classic menu: set default volume, pick a device,
// craze mode, refresh, exit.
//   - model.go: types, construction, Init
//   - update.go: Update loop and tea commands
//   - view.go: rendering
package menu

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"speakerup/cmd/speakerup/ui"
	"speakerup/internal/audio"
)

// state is the menu's input state machine.
type state int

const (
	stateLoading state = iota
	stateMenu
	statePickDevice
	stateEnterVolume
	stateApplying
)

// deviceItem adapts a playback device to the bubbles list. A nil
// device stands for "default device" in craze mode.
type deviceItem struct {
	dev *audio.Device
}

func (i deviceItem) Title() string {
	if i.dev == nil {
		return "Default device"
	}
	title := fmt.Sprintf("%d. %s", i.dev.Index, i.dev.Name)
	if i.dev.Default {
		title += " (DEFAULT)"
	}
	return title
}

func (i deviceItem) Description() string {
	if i.dev == nil {
		return "whatever the system is using right now"
	}
	return "playback device"
}

func (i deviceItem) FilterValue() string { return i.Title() }

// Model is the bubbletea model for the interactive menu.
type Model struct {
	backend audio.Backend
	log     *zap.Logger
	styles  ui.Styles

	state   state
	devices audio.DeviceList
	target  *audio.Device // nil targets the default device
	craze   bool          // craze flow active
	start   bool          // jump straight into craze after first load

	input      textinput.Model
	deviceList list.Model
	spinner    spinner.Model

	status string
	width  int
	height int
	err    error
}

// New builds the menu model. startCraze jumps straight into craze mode
// once the first enumeration lands (the -c flag).
func New(backend audio.Backend, styles ui.Styles, log *zap.Logger, startCraze bool) Model {
	if log == nil {
		log = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "0-100"
	input.CharLimit = 3
	input.Width = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Prompt

	dl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	dl.Title = "Select device"
	dl.SetShowStatusBar(false)
	dl.SetFilteringEnabled(false)

	return Model{
		backend:    backend,
		log:        log.Named("menu"),
		styles:     styles,
		state:      stateLoading,
		input:      input,
		deviceList: dl,
		spinner:    sp,
		start:      startCraze,
	}
}

// Init kicks off the first device enumeration.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDevices(), m.spinner.Tick)
}

// Run drives the interactive menu to completion.
func Run(backend audio.Backend, styles ui.Styles, log *zap.Logger, startCraze bool) error {
	_, err := tea.NewProgram(New(backend, styles, log, startCraze)).Run()
	return err
}
