// Package markdown renders article markdown and derives plain-text excerpts.
package markdown

import (
	"bytes"
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// DefaultExcerptRunes is the summary length used when none is supplied.
const DefaultExcerptRunes = 200

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	textPolicy   = bluemonday.StrictPolicy()
	blockEndTag  = regexp.MustCompile(`(?i)</(p|h[1-6]|li|blockquote|pre|tr|div)>|<br\s*/?>`)
	codeBlockTag = regexp.MustCompile(`(?is)<pre>.*?</pre>`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// RenderHTML converts markdown to HTML. On a render failure the escaped
// source is returned.
func RenderHTML(markdownText string) string {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return ""
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return template.HTMLEscapeString(text)
	}
	return out.String()
}

// PlainText renders markdown and strips every tag, leaving readable text.
// Code blocks are dropped.
func PlainText(markdownText string) string {
	rendered := RenderHTML(markdownText)
	rendered = codeBlockTag.ReplaceAllString(rendered, " ")
	rendered = blockEndTag.ReplaceAllString(rendered, " ")
	text := html.UnescapeString(textPolicy.Sanitize(rendered))
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

// Excerpt returns at most maxRunes runes of the plain text of markdownText,
// ending in an ellipsis when truncated.
func Excerpt(markdownText string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = DefaultExcerptRunes
	}
	text := PlainText(markdownText)
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxRunes-1])) + "…"
}
