package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rexy/internal/config"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes [PRESET]",
	Short: "List theme presets or select one",
	Long: `Without arguments, list the built-in theme presets with a swatch of their
match colors. With a preset name, store it as theme.preset in the config file.

Examples:
  rexy themes
  rexy themes dracula`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			name := args[0]
			if _, ok := styles.Presets[name]; !ok {
				return fmt.Errorf("unknown theme preset %q (available: %s)", name, strings.Join(styles.PresetNames(), ", "))
			}
			path := viper.ConfigFileUsed()
			if path == "" {
				path = defaultConfigPath
			}
			if err := config.SaveThemePreset(path, name); err != nil {
				return err
			}
			_, err := fmt.Fprintf(out, "Theme set to %s in %s\n", name, path)
			return err
		}

		if isTerminal(out) {
			forceColor()
		}
		current := cfg.Theme.Preset
		if current == "" {
			current = "default"
		}
		for _, name := range styles.PresetNames() {
			preset := styles.Presets[name]
			marker := "  "
			if name == current {
				marker = styles.SelectionIndicatorStyle.Render("> ")
			}
			if _, err := fmt.Fprintf(out, "%s%-18s %s  %s\n", marker, name, swatch(preset), preset.Description); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

// swatch renders one block per match slot color the preset defines.
func swatch(p styles.Preset) string {
	var b strings.Builder
	for i := range styles.MatchSlots {
		hex, ok := p.Colors[styles.MatchSlotToken(i)]
		if !ok {
			hex = styles.DefaultPreset.Colors[styles.MatchSlotToken(i)]
		}
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  "))
	}
	return b.String()
}
