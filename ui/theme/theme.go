package theme

// Styling for the booth window: one light and one dark palette applied to
// a handful of semantic ttk styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PaletteSnapshot holds resolved colours for one mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	Light = PaletteSnapshot{
		AppBg:     "#fdf8f3",
		Surface:   "#ffffff",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#f59e0b",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	Dark = PaletteSnapshot{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#f59e0b",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
)

var darkMode bool

// InitStyles applies the palette for the current mode.
func InitStyles() { applyStyles(Current()) }

// SetDark switches mode and reapplies styles.
func SetDark(dark bool) {
	darkMode = dark
	applyStyles(Current())
}

// Current returns the active palette.
func Current() PaletteSnapshot {
	if darkMode {
		return Dark
	}
	return Light
}

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))
	for name, bg := range map[string]string{StylePrimaryButton: p.Primary, StyleDangerButton: p.Danger} {
		StyleConfigure(name, Background(bg), Foreground("white"), Padding("4p 3p"), Borderwidth(1), Relief("ridge"))
	}
	StyleConfigure(StyleStateLabel,
		Foreground(p.Text),
		Background(p.Accent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
