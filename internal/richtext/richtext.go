// Package richtext renders local markdown and sanitizes HTML received from the CMS.
package richtext

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Markdown converts markdown to HTML. Raw HTML is passed through; callers
// sanitize before rendering into a page.
func Markdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the shared sanitizer for WordPress post bodies. On top of UGC
// it keeps figures, CSS classes used by the block editor, lazy-loading images and
// embedded Spotify/YouTube players.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("figure", "figcaption")
		p.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "div", "img")
		p.AllowAttrs("loading", "srcset", "sizes").OnElements("img")
		p.AllowAttrs("src").Matching(embedSource).OnElements("iframe")
		p.AllowAttrs("width", "height", "allow", "allowfullscreen", "title", "loading").OnElements("iframe")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// Sanitize cleans upstream HTML and marks the result safe for html/template.
func Sanitize(raw string) template.HTML {
	return template.HTML(Policy().Sanitize(raw))
}

// MarkdownHTML renders and sanitizes markdown in one step.
func MarkdownHTML(source string) (template.HTML, error) {
	out, err := Markdown(source)
	if err != nil {
		return "", err
	}
	return Sanitize(out), nil
}
