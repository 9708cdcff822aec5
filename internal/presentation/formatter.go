package presentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted --format values.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want text, json, yaml or markdown)", ErrUnknownFormat, s)
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	if format == "" {
		format = FormatText
	}
	return &Formatter{
		writer: writer,
		format: format,
	}
}

// FormatTemplates writes the template list.
func (f *Formatter) FormatTemplates(templates []TemplateDTO) error {
	switch f.format {
	case FormatJSON:
		return f.json(templates)
	case FormatYAML:
		return f.yaml(templates)
	}
	rows := make([][]string, len(templates))
	for i, t := range templates {
		rows[i] = []string{t.Icon, t.Kind, t.Title, t.Description}
	}
	return f.table([]string{"ICON", "KIND", "TITLE", "DESCRIPTION"}, rows)
}

// FormatCheck writes a chip engine check result.
func (f *Formatter) FormatCheck(check CheckDTO) error {
	switch f.format {
	case FormatJSON:
		return f.json(check)
	case FormatYAML:
		return f.yaml(check)
	}
	rows := [][]string{
		{"tokens", strings.Join(check.Tokens, ", ")},
		{"invalid", strings.Join(check.Invalid, ", ")},
		{"error_state", check.ErrorState},
		{"message", check.Message},
		{"can_create", fmt.Sprint(check.CanCreate)},
	}
	return f.table([]string{"FIELD", "VALUE"}, rows)
}

// FormatFlags writes the flag list.
func (f *Formatter) FormatFlags(list []FlagDTO) error {
	switch f.format {
	case FormatJSON:
		return f.json(list)
	case FormatYAML:
		return f.yaml(list)
	}
	rows := make([][]string, len(list))
	for i, fl := range list {
		rows[i] = []string{fl.Name, fmt.Sprint(fl.Enabled)}
	}
	return f.table([]string{"FLAG", "ENABLED"}, rows)
}

func (f *Formatter) json(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) yaml(v any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

func (f *Formatter) table(header []string, rows [][]string) error {
	if f.format == FormatMarkdown {
		return f.markdownTable(header, rows)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i == len(cells)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func (f *Formatter) markdownTable(header []string, rows [][]string) error {
	var b strings.Builder
	b.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.ReplaceAll(cell, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}
