package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sisuhud/sisu-hud/internal/config"
)

// Colour names for the user-chosen panel colours
const (
	ColorNameHUDIcon  fyne.ThemeColorName = "hudIcon"
	ColorNameHUDValue fyne.ThemeColorName = "hudValue"
)

// HUDTheme is a compact dark theme whose icon and value colours follow the
// appearance settings
type HUDTheme struct {
	iconColor  color.Color
	valueColor color.Color
}

// NewHUDTheme creates a theme with the given appearance
func NewHUDTheme(a config.Appearance) *HUDTheme {
	t := &HUDTheme{}
	t.SetAppearance(a)
	return t
}

// SetAppearance updates the icon and value colours
func (t *HUDTheme) SetAppearance(a config.Appearance) {
	a = a.Normalized()
	t.iconColor = parseColor(a.IconColor, config.DefaultIconColor)
	t.valueColor = parseColor(a.ValueColor, config.DefaultValueColor)
}

// ValueColor returns the colour used for value text
func (t *HUDTheme) ValueColor() color.Color {
	return t.valueColor
}

// Color returns theme colors
func (t *HUDTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case ColorNameHUDIcon:
		return t.iconColor
	case ColorNameHUDValue:
		return t.valueColor
	case theme.ColorNameBackground:
		return color.NRGBA{R: 18, G: 18, B: 18, A: 200}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *HUDTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *HUDTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *HUDTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	}

	return theme.DefaultTheme().Size(name)
}

func parseColor(hex, fallback string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallback)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
