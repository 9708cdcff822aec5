package enrichment

import (
	"fmt"
	"slices"
	"time"

	"github.com/zjrosen/enrich/internal/chips"
)

// DefaultModelLabel is displayed for records saved without an explicit model.
const DefaultModelLabel = "Default (OpenAI GPT 4.1-mini)"

// DefaultModels is the model list offered when config does not override it.
var DefaultModels = []string{DefaultModelLabel, "Claude 3.7", "Deep Seek"}

// Draft is the transient record behind an open modal.
type Draft struct {
	Kind           Kind
	Title          string
	Description    string
	Icon           string
	EnrichmentName string
	AIModel        string
	Objective      string
	Chips          chips.State

	// IsEdit marks drafts opened from an existing record at Index.
	IsEdit bool
	Index  int
}

// Record is a committed enrichment.
type Record struct {
	ID             string    `json:"id" yaml:"id"`
	Kind           Kind      `json:"-" yaml:"-"`
	Title          string    `json:"title" yaml:"title"`
	EnrichmentName string    `json:"name" yaml:"name"`
	AIModel        string    `json:"ai_model,omitempty" yaml:"ai_model,omitempty"`
	Objective      string    `json:"objective,omitempty" yaml:"objective,omitempty"`
	Emails         []string  `json:"emails,omitempty" yaml:"emails,omitempty"`
	SequenceNumber int       `json:"sequence" yaml:"sequence"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// ModelLabel returns the model to display, falling back to the default.
func (r Record) ModelLabel() string {
	if r.AIModel == "" {
		return DefaultModelLabel
	}
	return r.AIModel
}

// Icon returns the template icon for the record's kind.
func (r Record) Icon() string {
	t, _ := Lookup(r.Kind)
	return t.Icon
}

func (r Record) clone() Record {
	r.Emails = slices.Clone(r.Emails)
	return r
}

// AgeMinutes is the whole number of minutes between createdAt and now.
// Clock skew never yields a negative age.
func AgeMinutes(r Record, now time.Time) int {
	ms := now.Sub(r.CreatedAt).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms / 60000)
}

// CreatedLabel is the dropdown subtitle for r.
func CreatedLabel(r Record, now time.Time) string {
	return fmt.Sprintf("Created %d min ago", AgeMinutes(r, now))
}
