// Package ui provides the FitPrint desktop application UI components.
//
// This file defines a compact Fyne theme for a dense photo layout view.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	variantDark  = theme.VariantDark
	variantLight = theme.VariantLight
)

// FitPrintTheme wraps the default Fyne theme with compact sizing overrides.
// A nil variant follows the platform setting.
type FitPrintTheme struct {
	base    fyne.Theme
	variant *fyne.ThemeVariant
}

// NewFitPrintTheme creates a theme for the AppConfig theme name ("light",
// "dark" or "system").
func NewFitPrintTheme(name string) *FitPrintTheme {
	t := &FitPrintTheme{base: theme.DefaultTheme()}
	t.SetThemeName(name)
	return t
}

// SetThemeName switches the light/dark variant.
func (t *FitPrintTheme) SetThemeName(name string) {
	if v, ok := themeVariant(name); ok {
		t.variant = &v
		return
	}
	t.variant = nil
}

// themeVariant maps a theme name to a fixed variant. It reports false for
// "system" and unknown names.
func themeVariant(name string) (fyne.ThemeVariant, bool) {
	switch name {
	case "dark":
		return variantDark, true
	case "light":
		return variantLight, true
	}
	return 0, false
}

// Color delegates to the base theme with the configured variant.
func (t *FitPrintTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.variant != nil {
		variant = *t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *FitPrintTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *FitPrintTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *FitPrintTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
