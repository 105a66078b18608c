package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { require.NoError(t, ApplyTheme(ThemeConfig{})) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Colors[MatchSlotToken(3)], MatchSlotColors[3].Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "dracula"}))
	require.Equal(t, "#BD93F9", RegexGroupColor.Dark)
	require.Equal(t, "#BD93F9", MatchSlotColors[0].Light)
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{
			"match.slot.1":  "#00FF00",
			"regex.escape": "#123",
		},
	}))
	require.Equal(t, "#00FF00", MatchSlotColors[1].Dark)
	require.Equal(t, "#123", RegexEscapeColor.Dark)
	require.Equal(t, "#ECEFF4", TextPrimaryColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	require.EqualError(t, ApplyTheme(ThemeConfig{Preset: "solarized"}), "unknown theme preset: solarized")
	require.EqualError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"bql.keyword": "#fff"}}),
		"unknown color token: bql.keyword")
	require.EqualError(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"match.slot.0": "blue"}}),
		"invalid hex color for match.slot.0: blue")
}

func TestApplyTheme_RunsRebuilders(t *testing.T) {
	resetTheme(t)
	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	t.Cleanup(func() { styleRebuilders = styleRebuilders[:len(styleRebuilders)-1] })

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestPresets_CoverEveryToken(t *testing.T) {
	for _, name := range PresetNames() {
		preset := Presets[name]
		for _, token := range AllTokens() {
			hex, ok := preset.Colors[token]
			require.True(t, ok, "preset %s missing %s", name, token)
			require.True(t, IsValidHexColor(hex), "preset %s: %s=%s", name, token, hex)
		}
	}
}

func TestIsValidHexColor(t *testing.T) {
	require.True(t, IsValidHexColor("#fff"))
	require.True(t, IsValidHexColor("#A1B2C3"))
	require.False(t, IsValidHexColor("fff"))
	require.False(t, IsValidHexColor("#12345"))
	require.False(t, IsValidHexColor("#GGGGGG"))
}
