// Package render converts reply markdown into HTML for web chat clients.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Markdown renders the bold markers and bullet lists used in replies.
// Raw HTML in answers is escaped, never passed through.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a renderer with GFM and hard line breaks,
// so single newlines inside an answer survive as <br>.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// HTML converts text to an HTML fragment.
func (m *Markdown) HTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
