package styles

import (
	"github.com/charmbracelet/lipgloss"

	"seeker/internal/models"
)

// Theme defines a complete color scheme for the application
type Theme struct {
	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Background colors
	BgBase     lipgloss.Color
	BgSurface  lipgloss.Color
	BgElevated lipgloss.Color

	// Text colors
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Border  lipgloss.Color
	Divider lipgloss.Color

	// Senders
	User      lipgloss.Color
	Assistant lipgloss.Color
}

// DarkTheme is the dark mode color scheme
var DarkTheme = Theme{
	Primary:   lipgloss.Color("#9747FF"),
	Secondary: lipgloss.Color("#B47FFF"),
	Accent:    lipgloss.Color("#D9B8FF"),

	BgBase:     lipgloss.Color("#0E0B14"),
	BgSurface:  lipgloss.Color("#17121F"),
	BgElevated: lipgloss.Color("#221A2E"),

	TextPrimary:   lipgloss.Color("#F1ECF9"),
	TextSecondary: lipgloss.Color("#A99BBE"),
	TextMuted:     lipgloss.Color("#6E6380"),

	Success: lipgloss.Color("#34D399"),
	Warning: lipgloss.Color("#FBBF24"),
	Error:   lipgloss.Color("#FB7185"),
	Info:    lipgloss.Color("#60A5FA"),

	Border:  lipgloss.Color("#2E2540"),
	Divider: lipgloss.Color("#231C31"),

	User:      lipgloss.Color("#90CAF9"),
	Assistant: lipgloss.Color("#B47FFF"),
}

// LightTheme is the light mode color scheme
var LightTheme = Theme{
	Primary:   lipgloss.Color("#7B2FFF"),
	Secondary: lipgloss.Color("#9747FF"),
	Accent:    lipgloss.Color("#5B1FCC"),

	BgBase:     lipgloss.Color("#FAFAFC"),
	BgSurface:  lipgloss.Color("#FFFFFF"),
	BgElevated: lipgloss.Color("#F3EEFB"),

	TextPrimary:   lipgloss.Color("#1C1526"),
	TextSecondary: lipgloss.Color("#564A66"),
	TextMuted:     lipgloss.Color("#9D93AB"),

	Success: lipgloss.Color("#10B981"),
	Warning: lipgloss.Color("#F59E0B"),
	Error:   lipgloss.Color("#EF4444"),
	Info:    lipgloss.Color("#3B82F6"),

	Border:  lipgloss.Color("#E4DCF2"),
	Divider: lipgloss.Color("#F3EEFB"),

	User:      lipgloss.Color("#1E88E5"),
	Assistant: lipgloss.Color("#7B2FFF"),
}

// CurrentTheme holds the active theme (set at runtime based on terminal)
var CurrentTheme = DarkTheme

type Adaptive = lipgloss.AdaptiveColor

func adaptive(light, dark lipgloss.Color) Adaptive {
	return Adaptive{Light: string(light), Dark: string(dark)}
}

var (
	Primary   = adaptive(LightTheme.Primary, DarkTheme.Primary)
	Secondary = adaptive(LightTheme.Secondary, DarkTheme.Secondary)
	Accent    = adaptive(LightTheme.Accent, DarkTheme.Accent)
	Text      = adaptive(LightTheme.TextPrimary, DarkTheme.TextPrimary)
	Subtle    = adaptive(LightTheme.TextSecondary, DarkTheme.TextSecondary)
	Muted     = adaptive(LightTheme.TextMuted, DarkTheme.TextMuted)
	FgError   = adaptive(LightTheme.Error, DarkTheme.Error)
	FgSuccess = adaptive(LightTheme.Success, DarkTheme.Success)
	FgWarning = adaptive(LightTheme.Warning, DarkTheme.Warning)

	BgElevated  = adaptive(LightTheme.BgElevated, DarkTheme.BgElevated)
	BorderColor = adaptive(LightTheme.Border, DarkTheme.Border)
)

// StatusColorMap colors the status badge per phase.
var StatusColorMap = map[models.StatusState]lipgloss.Color{
	models.StatusThinking:   lipgloss.Color("#60A5FA"),
	models.StatusGenerating: lipgloss.Color("#B47FFF"),
	models.StatusProcessing: lipgloss.Color("#FBBF24"),
}

func StatusColor(state models.StatusState) lipgloss.Color {
	if c, ok := StatusColorMap[state]; ok {
		return c
	}
	return CurrentTheme.Primary
}

// InitTheme sets the current theme based on terminal background
func InitTheme() {
	if lipgloss.HasDarkBackground() {
		CurrentTheme = DarkTheme
	} else {
		CurrentTheme = LightTheme
	}
}
