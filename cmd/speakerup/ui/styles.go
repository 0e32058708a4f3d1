// Package ui provides the visual styling for the speakerup CLI and
// interactive menu, with light/dark mode support.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"speakerup/internal/audio"
)

var (
	// Light mode colors (default)
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#2196F3") // Blue
	LightAccent     = lipgloss.Color("#00ACC1") // Cyan
	LightMuted      = lipgloss.Color("#8a93a0")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#64B5F6")
	DarkAccent     = lipgloss.Color("#4DD0E1")
	DarkMuted      = lipgloss.Color("#6a7380")

	// Semantic colors (same in both modes)
	Destructive = lipgloss.Color("#e53935") // Red
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Warning     = lipgloss.Color("#FFC107") // Yellow
	Craze       = lipgloss.Color("#E040FB") // Magenta
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		IsDark:     true,
	}
}

// DetectTheme picks the theme from SPEAKERUP_DARK_MODE.
func DetectTheme() Theme {
	v := os.Getenv("SPEAKERUP_DARK_MODE")
	if v == "1" || strings.EqualFold(v, "true") {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles bundles the lipgloss styles used by the CLI output and the
// interactive menu.
type Styles struct {
	Theme Theme

	Banner     lipgloss.Style
	Title      lipgloss.Style
	Rule       lipgloss.Style
	MenuNumber lipgloss.Style
	MenuItem   lipgloss.Style
	Device     lipgloss.Style
	DefaultTag lipgloss.Style
	Prompt     lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	CrazeText  lipgloss.Style
	Muted      lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme:      theme,
		Banner:     lipgloss.NewStyle().Foreground(Craze).Bold(true),
		Title:      lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Rule:       lipgloss.NewStyle().Foreground(Warning),
		MenuNumber: lipgloss.NewStyle().Foreground(theme.Foreground).Bold(true),
		MenuItem:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Device:     lipgloss.NewStyle().Foreground(theme.Primary),
		DefaultTag: lipgloss.NewStyle().Foreground(Success),
		Prompt:     lipgloss.NewStyle().Foreground(Warning),
		Error:      lipgloss.NewStyle().Foreground(Destructive),
		Success:    lipgloss.NewStyle().Foreground(Success),
		CrazeText:  lipgloss.NewStyle().Foreground(Craze).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

const bannerText = `╔══════════════════════════════════════╗
║              SpeakerUp               ║
║      Audio Device Volume Control     ║
╚══════════════════════════════════════╝`

// RenderBanner returns the startup banner.
func (s Styles) RenderBanner() string {
	return s.Banner.Render(bannerText)
}

// RenderDeviceList formats an enumeration the way the list command and
// the interactive menu both present it.
func (s Styles) RenderDeviceList(devices audio.DeviceList) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Available Audio Devices:"))
	sb.WriteString("\n")
	sb.WriteString(s.Rule.Render(strings.Repeat("─", 50)))
	sb.WriteString("\n")

	if len(devices) == 0 {
		sb.WriteString(s.Muted.Render("  (no playback devices found)"))
		sb.WriteString("\n")
	}
	for _, d := range devices {
		line := fmt.Sprintf("%s %s",
			s.MenuNumber.Render(fmt.Sprintf("%2d.", d.Index)),
			s.Device.Render(d.Name))
		if d.Default {
			line += s.DefaultTag.Render(" (DEFAULT)")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(s.Rule.Render(strings.Repeat("─", 50)))
	return sb.String()
}
