package config

// DefaultConfigTemplate is the commented file written on first run.
func DefaultConfigTemplate() string {
	return `# enrich configuration
#
# Lookup order: --config flag, ./.enrich/config.yaml, ~/.config/enrich/config.yaml

# Reload models, theme and flags when this file changes.
auto_reload: true

ui:
  # Show the key help line under the table.
  show_help: true
  # Style for template descriptions: dark or light.
  markdown_style: dark

# Hex color overrides. Leave empty to keep the built-in palette.
theme:
  accent: ""
  muted: ""
  error: ""
  success: ""

enrichment:
  # Shown in the modal when no model was picked.
  default_model: "Default (OpenAI GPT 4.1-mini)"
  models:
    - "Default (OpenAI GPT 4.1-mini)"
    - "Claude 3.7"
    - "Deep Seek"
  # Rows of the demo table.
  companies:
    - SynetecHQ
    - Wavenest

tracing:
  enabled: false
  # none, file, stdout or otlp
  exporter: file
  # Defaults to ~/.config/enrich/traces/traces.jsonl
  file_path: ""
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

flags:
  # Treat duplicate emails like invalid ones and disable Create.
  duplicates-block-create: false
`
}
