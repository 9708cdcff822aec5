// Package config holds the enrich configuration: types, defaults,
// validation and the commented default file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/tracing"
)

// Config is the full configuration file.
type Config struct {
	AutoReload bool             `mapstructure:"auto_reload"`
	UI         UIConfig         `mapstructure:"ui"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Flags      map[string]bool  `mapstructure:"flags"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	ShowHelp      bool   `mapstructure:"show_help"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig overrides palette colors with hex values. Empty keeps the default.
type ThemeConfig struct {
	Accent  string `mapstructure:"accent"`
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

// EnrichmentConfig holds the model choices and the demo table rows.
type EnrichmentConfig struct {
	DefaultModel string   `mapstructure:"default_model"`
	Models       []string `mapstructure:"models"`
	Companies    []string `mapstructure:"companies"`
}

// TracingConfig mirrors tracing.Config for the file.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// Provider converts the file section to the tracing package config.
func (t TracingConfig) Provider() tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
	}
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	return Config{
		AutoReload: true,
		UI: UIConfig{
			ShowHelp:      true,
			MarkdownStyle: "dark",
		},
		Enrichment: EnrichmentConfig{
			DefaultModel: enrichment.DefaultModelLabel,
			Models:       slices.Clone(enrichment.DefaultModels),
			Companies:    []string{"SynetecHQ", "Wavenest"},
		},
		Tracing: TracingConfig{
			Exporter:     tracing.ExporterFile,
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{},
	}
}

// Dir returns ~/.config/enrich, or "" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "enrich")
}

// DefaultConfigPath is where a config file is written when none exists.
func DefaultConfigPath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return filepath.Join(".enrich", "config.yaml")
}

// DefaultTracesFilePath is the JSONL trace file used by the file exporter.
func DefaultTracesFilePath() string {
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "traces", "traces.jsonl")
	}
	return ""
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks every section and joins all problems found.
func Validate(c Config) error {
	return errors.Join(
		ValidateUI(c.UI),
		ValidateTheme(c.Theme),
		ValidateEnrichment(c.Enrichment),
		ValidateTracing(c.Tracing),
	)
}

// ValidateUI checks the ui section.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
}

// ValidateTheme checks that every override is a #RRGGBB color.
func ValidateTheme(theme ThemeConfig) error {
	for key, value := range map[string]string{
		"accent":  theme.Accent,
		"muted":   theme.Muted,
		"error":   theme.Error,
		"success": theme.Success,
	} {
		if value != "" && !hexColor.MatchString(value) {
			return fmt.Errorf("theme.%s must be a hex color like #RRGGBB, got %q", key, value)
		}
	}
	return nil
}

// ValidateEnrichment checks the model list and default.
func ValidateEnrichment(e EnrichmentConfig) error {
	if len(e.Models) == 0 {
		return fmt.Errorf("enrichment.models must list at least one model")
	}
	if e.DefaultModel != "" && !slices.Contains(e.Models, e.DefaultModel) {
		return fmt.Errorf("enrichment.default_model %q is not in enrichment.models", e.DefaultModel)
	}
	return nil
}

// ValidateTracing checks the tracing section. Paths are only required when
// tracing is enabled.
func ValidateTracing(t TracingConfig) error {
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if !t.Enabled {
		return nil
	}
	if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}
	if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// WriteDefaultConfig writes DefaultConfigTemplate to path, creating the
// parent directory.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "create config directory failed", err, "path", path)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "write default config failed", err, "path", path)
		return fmt.Errorf("writing config file: %w", err)
	}
	log.Info(log.CatConfig, "created default config", "path", path)
	return nil
}
