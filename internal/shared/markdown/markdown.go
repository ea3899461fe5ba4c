// Package markdown turns comment text into safe HTML.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts user-authored markdown to HTML.
type Renderer interface {
	// Clean strips every HTML tag from raw input before it is stored.
	Clean(input string) string
	// ToHTML renders stored markdown into sanitized HTML.
	ToHTML(markdown string) (string, error)
}

type renderer struct {
	md     goldmark.Markdown
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	ugc := bluemonday.UGCPolicy()
	ugc.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")

	return &renderer{md: md, ugc: ugc, strict: bluemonday.StrictPolicy()}
}

func (r *renderer) Clean(input string) string {
	return strings.TrimSpace(r.strict.Sanitize(input))
}

func (r *renderer) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return r.ugc.Sanitize(buf.String()), nil
}
