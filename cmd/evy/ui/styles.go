// Package ui provides the visual styling for the Eventually Yours terminal
// client, with light/dark mode support matching the web app's palette.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#fafaf9")
	LightForeground = lipgloss.Color("#1c1917")
	LightPrimary    = lipgloss.Color("#facc15") // brand yellow
	LightAccent     = lipgloss.Color("#ca8a04")
	LightSecondary  = lipgloss.Color("#e7e5e4")
	LightMuted      = lipgloss.Color("#78716c")
	LightBorder     = lipgloss.Color("#d6d3d1")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#1c1917")
	DarkForeground = lipgloss.Color("#f5f5f4")
	DarkPrimary    = lipgloss.Color("#facc15")
	DarkAccent     = lipgloss.Color("#fde047")
	DarkSecondary  = lipgloss.Color("#292524")
	DarkMuted      = lipgloss.Color("#a8a29e")
	DarkBorder     = lipgloss.Color("#44403c")
	DarkCard       = lipgloss.Color("#292524")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#22c55e")
	Warning     = lipgloss.Color("#f59e0b")
	Info        = lipgloss.Color("#2196F3")
	StarYellow  = lipgloss.Color("#facc15")
)

// Theme holds the current color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme auto-detects the terminal background, defaulting to dark.
// The explicit EVY_LIGHT_MODE override beats terminal detection.
func DetectTheme() Theme {
	if os.Getenv("EVY_LIGHT_MODE") == "1" {
		return LightTheme()
	}

	colorTerm := os.Getenv("COLORFGBG")
	if colorTerm != "" {
		// Format is usually "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if bgIdx >= 7 && bgIdx != 8 {
					return LightTheme()
				}
			}
		}
	}

	return DarkTheme()
}

// ThemeByName resolves a configured theme name, falling back to detection.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components.
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Forms
	FieldLabel   lipgloss.Style
	FieldFocused lipgloss.Style
	FieldError   lipgloss.Style
	Checkbox     lipgloss.Style
	CheckboxOn   lipgloss.Style
	Prompt       lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Notice  lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
	Card    lipgloss.Style
	Price   lipgloss.Style
	Rating  lipgloss.Style
	Modal   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#1c1917")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		FieldFocused: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		FieldError: lipgloss.NewStyle().
			Foreground(Destructive),

		Checkbox: lipgloss.NewStyle().
			Foreground(theme.Muted),

		CheckboxOn: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Notice: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Secondary).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#1c1917")).
			Padding(0, 1).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Price: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Rating: lipgloss.NewStyle().
			Foreground(StarYellow),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 3),
	}
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
