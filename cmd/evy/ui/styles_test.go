package ui

import "testing"

func TestDetectTheme_ExplicitOverrideBeatsColorFGBG(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0") // dark terminal background
	t.Setenv("EVY_LIGHT_MODE", "1")

	if DetectTheme().IsDark {
		t.Error("EVY_LIGHT_MODE=1 must win over a dark COLORFGBG")
	}
}

func TestDetectTheme_ColorFGBG(t *testing.T) {
	t.Setenv("EVY_LIGHT_MODE", "")

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("light background index should select the light theme")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("dark background index should select the dark theme")
	}

	t.Setenv("COLORFGBG", "")
	if !DetectTheme().IsDark {
		t.Error("unknown terminal should default to dark")
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("light").IsDark {
		t.Error("light must resolve to the light theme")
	}
	if !ThemeByName("dark").IsDark {
		t.Error("dark must resolve to the dark theme")
	}
}
