package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enrich/internal/enrichment"
)

func TestDefaults(t *testing.T) {
	d := Defaults()

	require.True(t, d.AutoReload)
	require.True(t, d.UI.ShowHelp)
	require.Equal(t, enrichment.DefaultModelLabel, d.Enrichment.DefaultModel)
	require.Equal(t, []string{"Default (OpenAI GPT 4.1-mini)", "Claude 3.7", "Deep Seek"}, d.Enrichment.Models)
	require.Equal(t, []string{"SynetecHQ", "Wavenest"}, d.Enrichment.Companies)
	require.False(t, d.Tracing.Enabled)
	require.NoError(t, Validate(d))
}

func TestDefaults_ModelsAreACopy(t *testing.T) {
	d := Defaults()
	d.Enrichment.Models[0] = "changed"
	require.Equal(t, enrichment.DefaultModelLabel, enrichment.DefaultModels[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad markdown style",
			mutate:  func(c *Config) { c.UI.MarkdownStyle = "neon" },
			wantErr: "ui.markdown_style",
		},
		{
			name:    "bad theme color",
			mutate:  func(c *Config) { c.Theme.Error = "red" },
			wantErr: "theme.error",
		},
		{
			name:    "no models",
			mutate:  func(c *Config) { c.Enrichment.Models = nil },
			wantErr: "enrichment.models",
		},
		{
			name:    "default model not listed",
			mutate:  func(c *Config) { c.Enrichment.DefaultModel = "GPT-9" },
			wantErr: "enrichment.default_model",
		},
		{
			name:    "sample rate out of range",
			mutate:  func(c *Config) { c.Tracing.SampleRate = 1.5 },
			wantErr: "tracing.sample_rate",
		},
		{
			name:    "unknown exporter",
			mutate:  func(c *Config) { c.Tracing.Exporter = "kafka" },
			wantErr: "tracing.exporter",
		},
		{
			name: "file exporter without path",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.FilePath = ""
			},
			wantErr: "tracing.file_path",
		},
		{
			name: "otlp without endpoint",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "otlp"
				c.Tracing.OTLPEndpoint = ""
			},
			wantErr: "tracing.otlp_endpoint",
		},
		{
			name: "disabled tracing skips path checks",
			mutate: func(c *Config) {
				c.Tracing.FilePath = ""
			},
		},
		{
			name:   "valid theme override",
			mutate: func(c *Config) { c.Theme.Accent = "#7D56F4" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTracingConfig_Provider(t *testing.T) {
	tc := TracingConfig{Enabled: true, Exporter: "otlp", OTLPEndpoint: "collector:4317", SampleRate: 0.5}
	p := tc.Provider()
	require.True(t, p.Enabled)
	require.Equal(t, "otlp", p.Exporter)
	require.Equal(t, "collector:4317", p.OTLPEndpoint)
	require.InDelta(t, 0.5, p.SampleRate, 1e-9)
}

func TestWriteDefaultConfig_LoadsAsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Defaults()
	require.Equal(t, want.AutoReload, cfg.AutoReload)
	require.Equal(t, want.UI, cfg.UI)
	require.Equal(t, want.Theme, cfg.Theme)
	require.Equal(t, want.Enrichment, cfg.Enrichment)
	require.Equal(t, want.Tracing, cfg.Tracing)
	require.Equal(t, map[string]bool{"duplicates-block-create": false}, cfg.Flags)
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `auto_reload: false
enrichment:
  models: ["A", "B"]
  default_model: B
flags:
  duplicates-block-create: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.AutoReload)
	require.Equal(t, []string{"A", "B"}, cfg.Enrichment.Models)
	require.Equal(t, "B", cfg.Enrichment.DefaultModel)
	require.Equal(t, []string{"SynetecHQ", "Wavenest"}, cfg.Enrichment.Companies, "unset keys keep defaults")
	require.True(t, cfg.Flags["duplicates-block-create"])
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Defaults().Enrichment, cfg.Enrichment)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ui: [unclosed"), 0o600))
	_, err := Load(bad)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("theme:\n  muted: blue\n"), 0o600))
	_, err = Load(invalid)
	require.ErrorContains(t, err, "theme.muted")
}
