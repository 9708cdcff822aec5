package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/enrich/internal/app"
	"github.com/zjrosen/enrich/internal/config"
	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/tracing"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// reply cannot land in a text input.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".enrich/config.yaml"
	debugEnv        = "ENRICH_DEBUG"
	debugLogFile    = "enrich-debug.log"
)

var (
	version    = "dev"
	cfgFile    string
	debug      bool
	cfg        config.Config
	cfgErr     error
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "enrich",
	Short: "A terminal ui for configuring company enrichments",
	Long: `A terminal user interface for creating and editing enrichments over a
company table: pick a template, name it, choose an AI model and list the
emails to research.`,
	Version:       version,
	SilenceUsage:  true,
	RunE:          runApp,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return cfgErr
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .enrich/config.yaml, then ~/.config/enrich/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"write a debug log to "+debugLogFile+" (or set "+debugEnv+"=1)")
}

// initConfig resolves the config file into cfg and configPath. Errors are
// reported by PersistentPreRunE so --help still works with a broken file.
func initConfig() {
	v := viper.New()
	config.SetDefaults(v)

	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case fileExists(localConfigPath):
		v.SetConfigFile(localConfigPath)
	default:
		if dir := config.Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Nothing anywhere: seed the user config with the commented default.
			if path := config.DefaultConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					v.SetConfigFile(path)
					_ = v.ReadInConfig()
				}
			}
		case cfgFile != "" && errors.Is(err, fs.ErrNotExist):
			// An explicit path that does not exist yet is created on demand.
		default:
			cfgErr = fmt.Errorf("reading config: %w", err)
			return
		}
	}

	configPath = v.ConfigFileUsed()
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, cfgErr = config.FromViper(v)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func debugEnabled() bool {
	return debug || os.Getenv(debugEnv) != ""
}

func runApp(cmd *cobra.Command, _ []string) error {
	if debugEnabled() {
		closeLog, err := log.Init(filepath.Clean(debugLogFile))
		if err != nil {
			return err
		}
		defer closeLog()
		log.Info(log.CatConfig, "starting", "version", version, "config", configPath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := tracing.NewProvider(ctx, cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.ErrorErr(log.CatTrace, "tracing shutdown", err)
		}
	}()

	model := app.New(cfg, configPath, enrichment.NewRegistry())
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
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
