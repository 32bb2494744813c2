package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SlicerTheme provides a custom theme for the application.
// A forced variant pins the palette to dark or light regardless of the
// system setting.
type SlicerTheme struct {
	Variant fyne.ThemeVariant
	Force   bool
}

var _ fyne.Theme = (*SlicerTheme)(nil)

// ThemeFromPreference maps a "dark", "light", or "system" preference value
// to a theme instance.
func ThemeFromPreference(pref string) fyne.Theme {
	switch pref {
	case "dark":
		return &SlicerTheme{Variant: theme.VariantDark, Force: true}
	case "light":
		return &SlicerTheme{Variant: theme.VariantLight, Force: true}
	default:
		return &SlicerTheme{}
	}
}

func (t *SlicerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.Force {
		variant = t.Variant
	}
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x7E, G: 0x57, B: 0xC2, A: 0xFF} // Violet accent
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x00, G: 0xC8, B: 0x96, A: 0x80} // Teal for selected stickers
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF} // Visible gray scrollbar
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *SlicerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *SlicerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *SlicerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
