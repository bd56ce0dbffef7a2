package compile

import "strings"

// Theme selects the preview color palette.
type Theme string

// The two supported preview themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette holds the colors one theme renders with.
type Palette struct {
	Background string
	Text       string
	Accent     string
	SubText    string
	Border     string
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Background: "#ffffff",
		Text:       "#1f2937",
		Accent:     "#1e40af",
		SubText:    "#6b7280",
		Border:     "#e5e7eb",
	},
	ThemeDark: {
		Background: "#1f2937",
		Text:       "#f3f4f6",
		Accent:     "#60a5fa",
		SubText:    "#9ca3af",
		Border:     "#374151",
	},
}

// ParseTheme maps a user-supplied theme name to a Theme. Matching is
// case-insensitive and anything unrecognized falls back to light.
func ParseTheme(name string) (theme Theme) {
	theme = Theme(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := palettes[theme]; !ok {
		theme = ThemeLight
	}
	return theme
}

// Palette returns the colors for the theme, falling back to the light
// palette for unknown values.
func (t Theme) Palette() (p Palette) {
	p, ok := palettes[t]
	if !ok {
		p = palettes[ThemeLight]
	}
	return p
}
