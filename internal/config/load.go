package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/zjrosen/enrich/internal/log"
)

// SetDefaults registers Defaults() on v key by key so that partial files
// still unmarshal into a complete Config.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("auto_reload", d.AutoReload)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("theme.accent", d.Theme.Accent)
	v.SetDefault("theme.muted", d.Theme.Muted)
	v.SetDefault("theme.error", d.Theme.Error)
	v.SetDefault("theme.success", d.Theme.Success)
	v.SetDefault("enrichment.default_model", d.Enrichment.DefaultModel)
	v.SetDefault("enrichment.models", d.Enrichment.Models)
	v.SetDefault("enrichment.companies", d.Enrichment.Companies)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("flags", d.Flags)
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}
	if cfg.Flags == nil {
		cfg.Flags = map[string]bool{}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads path with a fresh viper instance. A missing file yields the
// defaults. Used for hot reload, where the global viper must not change.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "config file missing, using defaults", "path", path)
	}
	return FromViper(v)
}
