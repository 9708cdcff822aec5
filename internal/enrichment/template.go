// Package enrichment owns enrichment records: the four agent templates, the
// in-memory registry with per-title sequence numbering, and the Session that
// drives a single create or edit draft from UI events.
package enrichment

import (
	"fmt"
	"slices"
	"strings"
)

// Kind selects one of the fixed enrichment templates.
type Kind int

const (
	DeepResearchAgent Kind = iota
	AIAgent
	LLMPrompt
	LinkedIn
)

// Template is the static description of a Kind.
type Template struct {
	Kind        Kind   `json:"-" yaml:"-"`
	Slug        string `json:"kind" yaml:"kind"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

var templates = [...]Template{
	DeepResearchAgent: {
		Kind:        DeepResearchAgent,
		Slug:        "deep-research-agent",
		Title:       "Deep Research Agent",
		Description: "Human like deep digital research for any data point on web",
		Icon:        "◎",
	},
	AIAgent: {
		Kind:        AIAgent,
		Slug:        "ai-agent",
		Title:       "AI Agent",
		Description: "Human like digital research for any data point on web",
		Icon:        "✦",
	},
	LLMPrompt: {
		Kind:        LLMPrompt,
		Slug:        "llm-prompt",
		Title:       "LLM Prompt",
		Description: "Leverage Ai to process internal and external data",
		Icon:        "❯",
	},
	LinkedIn: {
		Kind:        LinkedIn,
		Slug:        "linkedin",
		Title:       "LinkedIn",
		Description: "Augment company profiles with LinkedIn data",
		Icon:        "in",
	},
}

// Templates returns every template in menu order.
func Templates() []Template {
	return slices.Clone(templates[:])
}

// Lookup returns the template for k.
func Lookup(k Kind) (Template, bool) {
	if k < 0 || int(k) >= len(templates) {
		return Template{}, false
	}
	return templates[k], true
}

func (k Kind) String() string {
	if t, ok := Lookup(k); ok {
		return t.Slug
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts a slug ("ai-agent") or a title ("AI Agent"), ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, t := range templates {
		if strings.EqualFold(s, t.Slug) || strings.EqualFold(s, t.Title) {
			return t.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
