package document

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdownEngine = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Typographer))

// RenderMarkdown converts the index introduction to HTML. Raw HTML in the
// source is dropped.
func RenderMarkdown(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown intro: %w", err)
	}
	return template.HTML(buf.String()), nil
}
