package menu

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakerup/cmd/speakerup/ui"
	"speakerup/internal/audio"
	"speakerup/internal/volume"
)

type setCall struct {
	dev   *audio.Device
	level volume.Level
}

type fakeBackend struct {
	devices audio.DeviceList
	sets    []setCall
	setErr  error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Devices(ctx context.Context) (audio.DeviceList, error) {
	return f.devices, nil
}

func (f *fakeBackend) SetVolume(ctx context.Context, dev *audio.Device, level volume.Level) error {
	f.sets = append(f.sets, setCall{dev: dev, level: level})
	return f.setErr
}

func (f *fakeBackend) Volume(ctx context.Context) (volume.Level, error) {
	return 50, nil
}

func newTestModel(t *testing.T, backend *fakeBackend, craze bool) Model {
	t.Helper()
	m := New(backend, ui.NewStyles(ui.LightTheme()), nil, craze)

	// Land the initial enumeration.
	updated, _ := m.Update(devicesMsg{devices: backend.devices})
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testDevices() audio.DeviceList {
	return audio.DeviceList{
		{Index: 1, Name: "Speakers", Default: true},
		{Index: 2, Name: "Headphones"},
	}
}

func TestMenuShowsAfterLoad(t *testing.T) {
	m := newTestModel(t, &fakeBackend{devices: testDevices()}, false)
	assert.Equal(t, stateMenu, m.state)
	assert.Contains(t, m.View(), "Choose device and set volume")
	assert.Contains(t, m.View(), "Speakers")
}

func TestDefaultVolumeFlow(t *testing.T) {
	backend := &fakeBackend{devices: testDevices()}
	m := newTestModel(t, backend, false)

	updated, _ := m.Update(key("1"))
	m = updated.(Model)
	require.Equal(t, stateEnterVolume, m.state)

	updated, _ = m.Update(key("7"))
	m = updated.(Model)
	updated, _ = m.Update(key("5"))
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Equal(t, stateApplying, m.state)
	require.NotNil(t, cmd)

	// Drive the batched command until the applied message surfaces.
	msg := drain(t, cmd)
	updated, _ = m.Update(msg)
	m = updated.(Model)

	assert.Equal(t, stateMenu, m.state)
	require.Len(t, backend.sets, 1)
	assert.Nil(t, backend.sets[0].dev)
	assert.Equal(t, volume.Level(75), backend.sets[0].level)
	assert.Contains(t, m.status, "75%")
}

func TestPickDeviceFlow(t *testing.T) {
	backend := &fakeBackend{devices: testDevices()}
	m := newTestModel(t, backend, false)

	updated, _ := m.Update(key("2"))
	m = updated.(Model)
	require.Equal(t, statePickDevice, m.state)

	// First item is the first device (no default entry outside craze).
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Equal(t, stateEnterVolume, m.state)
	require.NotNil(t, m.target)
	assert.Equal(t, "Speakers", m.target.Name)
}

func TestCrazeIncludesDefaultEntry(t *testing.T) {
	backend := &fakeBackend{devices: testDevices()}
	m := newTestModel(t, backend, false)

	updated, _ := m.Update(key("3"))
	m = updated.(Model)
	require.Equal(t, statePickDevice, m.state)
	assert.True(t, m.craze)
	assert.Contains(t, m.View(), "CRAZE MODE ACTIVATED!")

	items := m.deviceList.Items()
	require.Len(t, items, 3)
	assert.Nil(t, items[0].(deviceItem).dev)
}

func TestInvalidVolumeKeepsPrompt(t *testing.T) {
	m := newTestModel(t, &fakeBackend{devices: testDevices()}, false)

	updated, _ := m.Update(key("1"))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	assert.Equal(t, stateEnterVolume, m.state)
	assert.Contains(t, m.status, "Invalid volume")
}

func TestExitKeys(t *testing.T) {
	m := newTestModel(t, &fakeBackend{devices: testDevices()}, false)

	for _, k := range []string{"5", "q"} {
		_, cmd := m.Update(key(k))
		require.NotNil(t, cmd, "key %s should quit", k)
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok, "key %s should produce QuitMsg", k)
	}
}

func TestStartInCraze(t *testing.T) {
	backend := &fakeBackend{devices: testDevices()}
	m := New(backend, ui.NewStyles(ui.LightTheme()), nil, true)

	updated, _ := m.Update(devicesMsg{devices: backend.devices})
	m = updated.(Model)

	assert.Equal(t, statePickDevice, m.state)
	assert.True(t, m.craze)
}

func TestApplyFailureReturnsToMenu(t *testing.T) {
	backend := &fakeBackend{
		devices: testDevices(),
		setErr:  errors.New("audio subsystem unavailable"),
	}
	m := newTestModel(t, backend, false)

	updated, _ := m.Update(key("1"))
	m = updated.(Model)
	updated, _ = m.Update(key("5"))
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.Equal(t, stateApplying, m.state)

	msg := drain(t, cmd)
	updated, next := m.Update(msg)
	m = updated.(Model)

	// A failed volume change renders the error and goes back to the
	// menu; it never ends the session.
	assert.Equal(t, stateMenu, m.state)
	assert.Contains(t, m.status, "audio subsystem unavailable")
	assert.Nil(t, next)
	assert.Contains(t, m.View(), "Enter your choice")
}

func TestEnumerationFailureShowsError(t *testing.T) {
	m := New(&fakeBackend{}, ui.NewStyles(ui.LightTheme()), nil, false)

	updated, _ := m.Update(devicesMsg{err: errors.New("pactl not found on PATH")})
	m = updated.(Model)

	assert.Equal(t, stateMenu, m.state)
	assert.Contains(t, m.status, "pactl not found on PATH")
}

func TestEnumerationFailureCancelsCrazeStart(t *testing.T) {
	backend := &fakeBackend{devices: testDevices()}
	m := New(backend, ui.NewStyles(ui.LightTheme()), nil, true)

	updated, _ := m.Update(devicesMsg{err: errors.New("powershell timed out")})
	m = updated.(Model)
	require.Equal(t, stateMenu, m.state)

	// A later successful refresh lands on the menu instead of jumping
	// into craze mode.
	updated, _ = m.Update(key("4"))
	m = updated.(Model)
	updated, _ = m.Update(devicesMsg{devices: backend.devices})
	m = updated.(Model)

	assert.Equal(t, stateMenu, m.state)
	assert.False(t, m.craze)
}

// drain runs cmd (possibly a batch) until a non-batch message other
// than a spinner tick appears.
func drain(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msgs := []tea.Cmd{cmd}
	for len(msgs) > 0 {
		next := msgs[0]
		msgs = msgs[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				msgs = append(msgs, c)
			}
		case appliedMsg:
			return msg
		case devicesMsg:
			return msg
		}
	}
	t.Fatal("no terminal message produced")
	return nil
}
