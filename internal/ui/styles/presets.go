// Package styles contains Lip Gloss style definitions.
package styles

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset is the rexy color scheme (the Dark values from styles.go).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default rexy theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault:   "#696969",
		TokenBorderHighlight: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenSelectionIndicator: "#FFFFFF",

		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		TokenRegexEscape:     "#FAB387",
		TokenRegexCharClass:  "#94E2D5",
		TokenRegexGroup:      "#89B4FA",
		TokenRegexQuantifier: "#CBA6F7",
		TokenRegexOperator:   "#F38BA8",

		TokenMatchText: "#1E1E2E",
		"match.slot.0": "#B4BEFE",
		"match.slot.1": "#F9E2AF",
		"match.slot.2": "#A6E3A1",
		"match.slot.3": "#F5C2E7",
		"match.slot.4": "#89DCEB",
		"match.slot.5": "#FAB387",
		"match.slot.6": "#F2CDCD",
		"match.slot.7": "#94E2D5",

		TokenDiffInsert: "#A6E3A1",
		TokenDiffDelete: "#F38BA8",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextPlaceholder: "#585B70", // surface2

		TokenBorderDefault:   "#6C7086", // overlay0
		TokenBorderHighlight: "#89B4FA", // blue

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenSelectionIndicator: "#CDD6F4", // text

		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		TokenRegexEscape:     "#FAB387", // peach
		TokenRegexCharClass:  "#94E2D5", // teal
		TokenRegexGroup:      "#89B4FA", // blue
		TokenRegexQuantifier: "#CBA6F7", // mauve
		TokenRegexOperator:   "#F38BA8", // red

		TokenMatchText: "#1E1E2E", // base
		"match.slot.0": "#B4BEFE", // lavender
		"match.slot.1": "#F9E2AF", // yellow
		"match.slot.2": "#A6E3A1", // green
		"match.slot.3": "#F5C2E7", // pink
		"match.slot.4": "#89DCEB", // sky
		"match.slot.5": "#FAB387", // peach
		"match.slot.6": "#F2CDCD", // flamingo
		"match.slot.7": "#94E2D5", // teal

		TokenDiffInsert: "#A6E3A1", // green
		TokenDiffDelete: "#F38BA8", // red
	},
}

// CatppuccinLattePreset is the Catppuccin Latte (light) theme.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Catppuccin Latte - light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#4C4F69", // text
		TokenTextSecondary:   "#5C5F77", // subtext1
		TokenTextMuted:       "#9CA0B0", // overlay0
		TokenTextPlaceholder: "#ACB0BE", // surface2

		TokenBorderDefault:   "#9CA0B0", // overlay0
		TokenBorderHighlight: "#1E66F5", // blue

		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		TokenSelectionIndicator: "#4C4F69", // text

		TokenOverlayTitle:  "#4C4F69", // text
		TokenOverlayBorder: "#9CA0B0", // overlay0

		TokenRegexEscape:     "#FE640B", // peach
		TokenRegexCharClass:  "#179299", // teal
		TokenRegexGroup:      "#1E66F5", // blue
		TokenRegexQuantifier: "#8839EF", // mauve
		TokenRegexOperator:   "#D20F39", // red

		TokenMatchText: "#EFF1F5", // base
		"match.slot.0": "#7287FD", // lavender
		"match.slot.1": "#DF8E1D", // yellow
		"match.slot.2": "#40A02B", // green
		"match.slot.3": "#EA76CB", // pink
		"match.slot.4": "#04A5E5", // sky
		"match.slot.5": "#FE640B", // peach
		"match.slot.6": "#DD7878", // flamingo
		"match.slot.7": "#179299", // teal

		TokenDiffInsert: "#40A02B", // green
		TokenDiffDelete: "#D20F39", // red
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vivid colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#F8F8F2", // foreground
		TokenTextSecondary:   "#F8F8F2", // foreground
		TokenTextMuted:       "#6272A4", // comment
		TokenTextPlaceholder: "#6272A4", // comment

		TokenBorderDefault:   "#6272A4", // comment
		TokenBorderHighlight: "#BD93F9", // purple

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenSelectionIndicator: "#F8F8F2", // foreground

		TokenOverlayTitle:  "#F8F8F2", // foreground
		TokenOverlayBorder: "#6272A4", // comment

		TokenRegexEscape:     "#FFB86C", // orange
		TokenRegexCharClass:  "#8BE9FD", // cyan
		TokenRegexGroup:      "#BD93F9", // purple
		TokenRegexQuantifier: "#FF79C6", // pink
		TokenRegexOperator:   "#FF5555", // red

		TokenMatchText: "#282A36", // background
		"match.slot.0": "#BD93F9", // purple
		"match.slot.1": "#F1FA8C", // yellow
		"match.slot.2": "#50FA7B", // green
		"match.slot.3": "#FF79C6", // pink
		"match.slot.4": "#8BE9FD", // cyan
		"match.slot.5": "#FFB86C", // orange
		"match.slot.6": "#FF5555", // red
		"match.slot.7": "#F8F8F2", // foreground

		TokenDiffInsert: "#50FA7B", // green
		TokenDiffDelete: "#FF5555", // red
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4", // nord6
		TokenTextSecondary:   "#D8DEE9", // nord4
		TokenTextMuted:       "#4C566A", // nord3
		TokenTextPlaceholder: "#4C566A", // nord3

		TokenBorderDefault:   "#4C566A", // nord3
		TokenBorderHighlight: "#88C0D0", // nord8

		TokenStatusSuccess: "#A3BE8C", // nord14
		TokenStatusWarning: "#EBCB8B", // nord13
		TokenStatusError:   "#BF616A", // nord11

		TokenSelectionIndicator: "#ECEFF4", // nord6

		TokenOverlayTitle:  "#ECEFF4", // nord6
		TokenOverlayBorder: "#4C566A", // nord3

		TokenRegexEscape:     "#D08770", // nord12
		TokenRegexCharClass:  "#8FBCBB", // nord7
		TokenRegexGroup:      "#81A1C1", // nord9
		TokenRegexQuantifier: "#B48EAD", // nord15
		TokenRegexOperator:   "#BF616A", // nord11

		TokenMatchText: "#2E3440", // nord0
		"match.slot.0": "#88C0D0", // nord8
		"match.slot.1": "#EBCB8B", // nord13
		"match.slot.2": "#A3BE8C", // nord14
		"match.slot.3": "#B48EAD", // nord15
		"match.slot.4": "#8FBCBB", // nord7
		"match.slot.5": "#D08770", // nord12
		"match.slot.6": "#BF616A", // nord11
		"match.slot.7": "#81A1C1", // nord9

		TokenDiffInsert: "#A3BE8C", // nord14
		TokenDiffDelete: "#BF616A", // nord11
	},
}

// HighContrastPreset maximizes legibility on dark terminals.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast - pure colors on black",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#AAAAAA",
		TokenTextPlaceholder: "#AAAAAA",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderHighlight: "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenSelectionIndicator: "#FFFF00",

		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		TokenRegexEscape:     "#FF8800",
		TokenRegexCharClass:  "#00FFFF",
		TokenRegexGroup:      "#00AAFF",
		TokenRegexQuantifier: "#FF00FF",
		TokenRegexOperator:   "#FF0000",

		TokenMatchText: "#000000",
		"match.slot.0": "#FFFFFF",
		"match.slot.1": "#FFFF00",
		"match.slot.2": "#00FF00",
		"match.slot.3": "#FF00FF",
		"match.slot.4": "#00FFFF",
		"match.slot.5": "#FF8800",
		"match.slot.6": "#FF4444",
		"match.slot.7": "#AAAAFF",

		TokenDiffInsert: "#00FF00",
		TokenDiffDelete: "#FF0000",
	},
}
