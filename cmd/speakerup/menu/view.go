package menu

import (
	"strings"
)

// menu entries, rendered in order with 1-based hotkeys.
var menuEntries = []string{
	"Set volume for default device",
	"Choose device and set volume",
	"CRAZE mode - set any volume that works!",
	"Refresh device list",
	"Exit",
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.RenderBanner())
	sb.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Muted.Render(" enumerating playback devices..."))
		sb.WriteString("\n")

	case stateMenu:
		sb.WriteString(m.styles.RenderDeviceList(m.devices))
		sb.WriteString("\n\n")
		if m.status != "" {
			sb.WriteString(m.status)
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.styles.Title.Render("Options:"))
		sb.WriteString("\n")
		for i, entry := range menuEntries {
			sb.WriteString(m.styles.MenuNumber.Render(numbered(i + 1)))
			sb.WriteString(" ")
			sb.WriteString(m.styles.MenuItem.Render(entry))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(m.styles.Prompt.Render("Enter your choice (1-5): "))

	case statePickDevice:
		if m.craze {
			sb.WriteString(m.styles.CrazeText.Render("CRAZE MODE ACTIVATED!"))
			sb.WriteString("\n")
			sb.WriteString(m.styles.Prompt.Render("Set ANY volume that works for you - go crazy!"))
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.deviceList.View())

	case stateEnterVolume:
		if m.craze {
			sb.WriteString(m.styles.CrazeText.Render("Enter your CRAZE volume (0-100): "))
		} else {
			sb.WriteString(m.styles.Prompt.Render("Enter volume (0-100): "))
		}
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		if m.status != "" {
			sb.WriteString(m.status)
			sb.WriteString("\n")
		}
		sb.WriteString(m.styles.Muted.Render("enter to apply, esc to cancel"))

	case stateApplying:
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.styles.Muted.Render(" talking to the audio subsystem..."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	return sb.String()
}

func numbered(n int) string {
	return string(rune('0'+n)) + "."
}
