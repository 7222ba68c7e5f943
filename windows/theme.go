package windows

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme defines a modern theme for the dashboard
type CustomTheme struct{}

var _ fyne.Theme = (*CustomTheme)(nil)

func (m CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantLight {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0xfa, G: 0xfa, B: 0xf8, A: 0xff} // Warm light background
		case theme.ColorNameButton:
			return color.NRGBA{R: 0x00, G: 0x89, B: 0x7b, A: 0xff} // Material Teal
		case theme.ColorNamePrimary:
			return color.NRGBA{R: 0x00, G: 0x89, B: 0x7b, A: 0xff} // Material Teal
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff} // Lighter teal
		case theme.ColorNameFocus:
			return color.NRGBA{R: 0x00, G: 0x69, B: 0x5c, A: 0xff} // Darker teal
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff} // Dark gray text
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // White input
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0xb2, G: 0xdf, B: 0xdb, A: 0xff} // Light teal selection
		case theme.ColorNameForegroundOnPrimary:
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff} // White on teal
		}
	} else {
		switch name {
		case theme.ColorNameBackground:
			return color.NRGBA{R: 0x1b, G: 0x1f, B: 0x1e, A: 0xff} // Dark background
		case theme.ColorNameButton:
			return color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff} // Lighter teal for dark mode
		case theme.ColorNamePrimary:
			return color.NRGBA{R: 0x26, G: 0xa6, B: 0x9a, A: 0xff}
		case theme.ColorNameHover:
			return color.NRGBA{R: 0x4d, G: 0xb6, B: 0xac, A: 0xff}
		case theme.ColorNameFocus:
			return color.NRGBA{R: 0x80, G: 0xcb, B: 0xc4, A: 0xff}
		case theme.ColorNameForeground:
			return color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff} // Light text
		case theme.ColorNameInputBackground:
			return color.NRGBA{R: 0x2a, G: 0x2e, B: 0x2d, A: 0xff}
		case theme.ColorNameSelection:
			return color.NRGBA{R: 0x00, G: 0x69, B: 0x5c, A: 0xff}
		case theme.ColorNameForegroundOnPrimary:
			return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (m CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameInlineIcon:
		return 24
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameSeparatorThickness:
		return 1
	}
	return theme.DefaultTheme().Size(name)
}
