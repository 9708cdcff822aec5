// Package markdown renders template descriptions with glamour. Output is
// cached per style, width and source text since the modal re-renders on
// every keystroke.
package markdown

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/zjrosen/enrich/internal/cachemanager"
	"github.com/zjrosen/enrich/internal/log"
)

const (
	StyleDark  = "dark"
	StyleLight = "light"
)

type renderInput struct {
	style string
	width int
	text  string
}

// Renderer renders markdown for a fixed style and width.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
	cache *cachemanager.ReadThroughCache[string, string, renderInput]
}

// New creates a renderer. Unknown styles fall back to dark.
func New(style string, width int) (*Renderer, error) {
	if style != StyleLight {
		style = StyleDark
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStyles(noMargin(style)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	r := &Renderer{style: style, width: width, term: term}
	store := cachemanager.NewInMemoryCacheManager[string, string](
		"markdown", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	r.cache = cachemanager.NewReadThroughCache(store, r.render)
	return r, nil
}

// noMargin returns the standard style without document margins so the
// description lines up with the other modal fields.
func noMargin(style string) ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig
	if style == StyleLight {
		cfg = glamourstyles.LightStyleConfig
	}
	zero := uint(0)
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	return cfg
}

// Style returns the resolved style name.
func (r *Renderer) Style() string {
	return r.style
}

// Width returns the word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render returns the styled text with surrounding blank lines removed.
func (r *Renderer) Render(text string) (string, error) {
	in := renderInput{style: r.style, width: r.width, text: text}
	key := fmt.Sprintf("%s:%d:%s", in.style, in.width, in.text)
	return r.cache.Get(context.Background(), key, in, 0)
}

// RenderOrPlain renders text and falls back to the raw text on error.
func (r *Renderer) RenderOrPlain(text string) string {
	out, err := r.Render(text)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown render failed", err)
		return text
	}
	return out
}

func (r *Renderer) render(_ context.Context, in renderInput) (string, error) {
	out, err := r.term.Render(in.text)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
