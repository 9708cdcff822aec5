package presentation

import (
	"github.com/zjrosen/enrich/internal/chips"
	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/flags"
)

// TemplateDTO represents an enrichment template for presentation
type TemplateDTO struct {
	Kind        string `json:"kind" yaml:"kind"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

// CheckDTO is the result of running tokens through the chip engine.
type CheckDTO struct {
	Tokens     []string `json:"tokens" yaml:"tokens"`
	Invalid    []string `json:"invalid" yaml:"invalid"`
	ErrorState string   `json:"error_state" yaml:"error_state"`
	Message    string   `json:"message" yaml:"message"`
	CanCreate  bool     `json:"can_create" yaml:"can_create"`
}

// FlagDTO is a feature flag and its effective value.
type FlagDTO struct {
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// FromTemplate converts a template to a DTO
func FromTemplate(t enrichment.Template) TemplateDTO {
	return TemplateDTO{
		Kind:        t.Slug,
		Title:       t.Title,
		Description: t.Description,
		Icon:        t.Icon,
	}
}

// FromTemplates converts templates to DTOs
func FromTemplates(ts []enrichment.Template) []TemplateDTO {
	dtos := make([]TemplateDTO, len(ts))
	for i, t := range ts {
		dtos[i] = FromTemplate(t)
	}
	return dtos
}

// FromChips builds a CheckDTO from an engine state. canCreate is passed in
// so callers can apply feature flags on top of the engine gate.
func FromChips(s chips.State, canCreate bool) CheckDTO {
	invalid := s.Invalid()
	if invalid == nil {
		invalid = []string{}
	}
	tokens := s.Tokens()
	if tokens == nil {
		tokens = []string{}
	}
	return CheckDTO{
		Tokens:     tokens,
		Invalid:    invalid,
		ErrorState: s.ErrorState().String(),
		Message:    s.Message(),
		CanCreate:  canCreate,
	}
}

// FromFlags lists every known flag in name order.
func FromFlags(r *flags.Registry) []FlagDTO {
	names := r.Names()
	dtos := make([]FlagDTO, len(names))
	for i, name := range names {
		dtos[i] = FlagDTO{Name: name, Enabled: r.Enabled(name)}
	}
	return dtos
}
