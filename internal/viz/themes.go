package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour scheme shared by the terminal and GIF output.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Alert      lipgloss.Color
}

var (
	ThemeQuantum = Theme{
		Name:       "quantum",
		Primary:    lipgloss.Color("#00ffff"),
		Secondary:  lipgloss.Color("#8888ff"),
		Accent:     lipgloss.Color("#ff00ff"),
		Background: lipgloss.Color("#0a0a14"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#444466"),
		Alert:      lipgloss.Color("#ff0000"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Alert:      lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Alert:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Alert:      lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeQuantum,
		ThemeRetro,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the quantum theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeQuantum
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t in Themes.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Pens maps canvas pens to colours, drawing the state vector in vector.
func (t Theme) Pens(vector lipgloss.Color) map[Pen]lipgloss.Color {
	return map[Pen]lipgloss.Color{
		PenGrid:   t.Muted,
		PenAxis:   t.Secondary,
		PenTrail:  t.Accent,
		PenVector: vector,
		PenAlert:  t.Alert,
	}
}

var namedColors = map[string]string{
	"green":  "#008000",
	"blue":   "#0000ff",
	"red":    "#ff0000",
	"purple": "#800080",
	"orange": "#ffa500",
	"cyan":   "#00ffff",
	"yellow": "#ffff00",
	"white":  "#ffffff",
	"black":  "#000000",
	"gray":   "#808080",
}

// PaletteColor resolves a palette entry, either a colour name or a
// #rrggbb literal. Unknown names resolve to white.
func PaletteColor(name string) lipgloss.Color {
	if hex, ok := namedColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(hex)
	}
	if len(name) == 7 && name[0] == '#' {
		return lipgloss.Color(name)
	}
	return lipgloss.Color("#ffffff")
}

// RGBA converts a #rrggbb colour for raster output.
func RGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}
