package menu

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"speakerup/internal/audio"
	"speakerup/internal/volume"
)

// devicesMsg carries a finished enumeration.
type devicesMsg struct {
	devices audio.DeviceList
	err     error
}

// appliedMsg carries the outcome of a volume change.
type appliedMsg struct {
	dev   *audio.Device
	level volume.Level
	craze bool
	err   error
}

func (m Model) loadDevices() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		devices, err := backend.Devices(context.Background())
		return devicesMsg{devices: devices, err: err}
	}
}

func (m Model) applyVolume(dev *audio.Device, level volume.Level, craze bool) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		err := backend.SetVolume(context.Background(), dev, level)
		return appliedMsg{dev: dev, level: level, craze: craze, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.deviceList.SetSize(msg.Width, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.updateKey(msg)

	case devicesMsg:
		return m.updateDevices(msg)

	case appliedMsg:
		if msg.err != nil {
			m.log.Warn("volume change failed", zap.Error(msg.err))
			m.status = m.styles.Error.Render("Error: " + msg.err.Error())
		} else {
			m.status = m.renderApplied(msg)
		}
		m.state = stateMenu
		m.craze = false
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDevices(msg devicesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("device enumeration failed", zap.Error(msg.err))
		m.status = m.styles.Error.Render("Error: " + msg.err.Error())
		m.state = stateMenu
		// A pending craze jump must not fire on a later refresh.
		m.start = false
		return m, nil
	}

	m.devices = msg.devices
	if m.state == stateLoading || m.state == stateApplying {
		m.status = m.styles.Muted.Render(fmt.Sprintf("%d playback devices", len(m.devices)))
		m.state = stateMenu
	}

	if m.start {
		m.start = false
		return m.beginCraze()
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.updateMenuKey(msg)

	case statePickDevice:
		switch msg.String() {
		case "esc":
			m.state = stateMenu
			m.craze = false
			return m, nil
		case "enter":
			item, ok := m.deviceList.SelectedItem().(deviceItem)
			if !ok {
				return m, nil
			}
			m.target = item.dev
			return m.beginVolumeEntry()
		}
		var cmd tea.Cmd
		m.deviceList, cmd = m.deviceList.Update(msg)
		return m, cmd

	case stateEnterVolume:
		switch msg.String() {
		case "esc":
			m.state = stateMenu
			m.craze = false
			m.input.Reset()
			return m, nil
		case "enter":
			level, err := volume.Parse(m.input.Value())
			if err != nil {
				m.status = m.styles.Error.Render("Invalid volume value")
				m.input.Reset()
				return m, nil
			}
			m.input.Reset()
			m.input.Blur()
			m.state = stateApplying
			m.status = ""
			return m, tea.Batch(m.applyVolume(m.target, level, m.craze), m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m Model) updateMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.target = nil
		m.craze = false
		return m.beginVolumeEntry()

	case "2":
		m.craze = false
		return m.beginDevicePick(false)

	case "3":
		return m.beginCraze()

	case "4":
		m.state = stateApplying
		m.status = m.styles.Muted.Render("Refreshing device list...")
		return m, tea.Batch(m.loadDevices(), m.spinner.Tick)

	case "5", "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) beginCraze() (tea.Model, tea.Cmd) {
	m.craze = true
	return m.beginDevicePick(true)
}

// beginDevicePick enters device selection. Craze mode gets a leading
// "default device" entry, matching the press-Enter-for-default prompt.
func (m Model) beginDevicePick(includeDefault bool) (tea.Model, tea.Cmd) {
	items := make([]list.Item, 0, len(m.devices)+1)
	if includeDefault {
		items = append(items, deviceItem{})
	}
	for i := range m.devices {
		d := m.devices[i]
		items = append(items, deviceItem{dev: &d})
	}

	m.state = statePickDevice
	m.status = ""
	cmd := m.deviceList.SetItems(items)
	m.deviceList.ResetSelected()
	return m, cmd
}

func (m Model) beginVolumeEntry() (tea.Model, tea.Cmd) {
	m.state = stateEnterVolume
	m.status = ""
	m.input.Reset()
	return m, m.input.Focus()
}

func (m Model) renderApplied(msg appliedMsg) string {
	name := "Default Device"
	if msg.dev != nil {
		name = msg.dev.Name
	}
	if msg.craze {
		return m.styles.CrazeText.Render(
			fmt.Sprintf("CRAZE volume %d%% applied to %s!", int(msg.level), name))
	}
	return m.styles.Success.Render(
		fmt.Sprintf("✓ Volume set to %d%% for %s", int(msg.level), name))
}
