package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rexy/internal/app"
	"github.com/zjrosen/rexy/internal/config"
	"github.com/zjrosen/rexy/internal/infrastructure/sqlite"
	"github.com/zjrosen/rexy/internal/library"
	"github.com/zjrosen/rexy/internal/log"
	"github.com/zjrosen/rexy/internal/tester"
	"github.com/zjrosen/rexy/internal/tracing"
	"github.com/zjrosen/rexy/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".rexy/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// TUI flags
	patternFlag string
	flagsFlag   string
	fileFlag    string
	watchFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "rexy",
	Short: "A terminal regex tester",
	Long: `rexy is a terminal regex tester. Type a pattern and see every match and
capture group highlighted in the test string as you type.

Examples:
  rexy
  rexy --pattern '(\d{4})-(\d{2})' --flags g
  rexy --file access.log --watch`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	Args:          cobra.NoArgs,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .rexy/config.yaml or ~/.config/rexy/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also REXY_DEBUG=1)")

	rootCmd.Flags().StringVarP(&patternFlag, "pattern", "p", "", "initial pattern")
	rootCmd.Flags().StringVarP(&flagsFlag, "flags", "f", "", "initial flags (default: regex.default_flags)")
	rootCmd.Flags().StringVar(&fileFlag, "file", "", "load the test string from a file")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "reload the test string when --file changes")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("regex.dialect", defaults.Regex.Dialect)
	viper.SetDefault("regex.default_flags", defaults.Regex.DefaultFlags)
	viper.SetDefault("regex.timeout", defaults.Regex.Timeout)
	viper.SetDefault("ui.debounce", defaults.UI.Debounce)
	viper.SetDefault("ui.show_match_table", defaults.UI.ShowMatchTable)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("library.db_path", defaults.Library.DBPath)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	viper.SetEnvPrefix("REXY")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .rexy/config.yaml (current directory)
		// 2. ~/.config/rexy/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else if dir := config.DefaultConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user config
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if path := userConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func userConfigPath() string {
	dir := config.DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// initLogging enables the file logger when --debug or REXY_DEBUG is set.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("REXY_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("REXY_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "rexy starting", "debug", true, "logPath", logPath, "version", version)
	return cleanup, nil
}

// newEvaluator validates the config and builds the evaluator with its
// engine, palette, budget and tracer. The returned shutdown flushes traces.
func newEvaluator() (*tester.Evaluator, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return nil, nil, fmt.Errorf("applying theme: %w", err)
	}

	engine, err := cfg.Regex.Engine()
	if err != nil {
		return nil, nil, err
	}
	palette, err := cfg.Highlight.BuildPalette()
	if err != nil {
		return nil, nil, fmt.Errorf("highlight.palette: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		log.Warn(log.CatTrace, "tracing disabled", "error", err)
		provider = tracing.Disabled()
	}
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.Warn(log.CatTrace, "trace shutdown failed", "error", err)
		}
	}

	ev := tester.NewEvaluator(
		tester.WithEngine(engine),
		tester.WithBudget(cfg.Regex.Budget()),
		tester.WithPalette(palette),
		tester.WithTracer(provider.Tracer()),
	)
	return ev, shutdown, nil
}

// openLibrary opens the SQLite pattern library at library.db_path.
func openLibrary() (*library.Service, func(), error) {
	path := cfg.Library.DBPath
	if path == "" {
		path = config.DefaultLibraryPath()
	}
	if path == "" {
		return nil, nil, errors.New("no library path configured")
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening library: %w", err)
	}
	return library.NewService(db.PatternRepository()), func() { _ = db.Close() }, nil
}

// resolveFlags returns explicit flags, or the configured default.
func resolveFlags(cmd *cobra.Command, name, value string) string {
	if cmd.Flags().Changed(name) {
		return value
	}
	return cfg.Regex.DefaultFlags
}

// readSubject loads path, or stdin when path is "-".
func readSubject(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: user-supplied subject file
	}
	if err != nil {
		return "", fmt.Errorf("reading subject: %w", err)
	}
	return string(data), nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanupLog, err := initLogging("rexy")
	if err != nil {
		return err
	}
	defer cleanupLog()
	debug := debugFlag || os.Getenv("REXY_DEBUG") != ""

	ev, shutdown, err := newEvaluator()
	if err != nil {
		return err
	}
	defer shutdown()

	in := tester.Input{
		Pattern: patternFlag,
		Flags:   resolveFlags(cmd, "flags", flagsFlag),
	}
	if fileFlag != "" {
		if in.Subject, err = readSubject(fileFlag, cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if watchFlag && (fileFlag == "" || fileFlag == "-") {
		return errors.New("--watch requires --file")
	}

	lib, closeLib, err := openLibrary()
	if err != nil {
		// The TUI still works without saving.
		log.Warn(log.CatDB, "pattern library unavailable", "error", err)
		lib, closeLib = nil, func() {}
	}
	defer closeLib()

	// Store the config file path for saving default flags
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = defaultConfigPath
	}

	zone.NewGlobal()
	defer zone.Close()

	model := app.New(app.Options{
		Config:      cfg,
		ConfigPath:  configFilePath,
		Evaluator:   ev,
		Library:     lib,
		Input:       in,
		SubjectPath: fileFlag,
		Watch:       watchFlag,
		DebugMode:   debug,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()

	// Clean up watcher resources
	if m, ok := final.(app.Model); ok {
		if closeErr := m.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
