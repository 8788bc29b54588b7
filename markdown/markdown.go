// Package markdown renders post bodies to HTML with goldmark.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// engine is safe for concurrent use.
var engine = New()

// New returns the goldmark engine used for post bodies: GitHub flavoured
// markdown, footnotes, typographic punctuation and heading anchors. Raw HTML
// passes through since posts are written by the site owner.
func New() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(mediaTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// Render writes the HTML for body to w.
func Render(w io.Writer, body string) error {
	if err := engine.Convert([]byte(body), w); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	return nil
}

// HTML renders body for use inside an html/template.
func HTML(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := Render(&buf, body); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Markdown returns a templ.Component that renders body as HTML.
func Markdown(body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := Render(&buf, body); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// mediaTransformer loads the first image eagerly and the rest lazily, opens
// external links in a new tab, and neutralises links with unsafe schemes.
type mediaTransformer struct{}

func (mediaTransformer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	images := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Image:
			images++
			if images == 1 {
				node.SetAttributeString("loading", []byte("eager"))
			} else {
				node.SetAttributeString("loading", []byte("lazy"))
			}
			node.SetAttributeString("decoding", []byte("async"))
		case *ast.Link:
			dest := SafeURL(string(node.Destination))
			if dest == "" {
				node.Destination = []byte("#")
				return ast.WalkContinue, nil
			}
			if IsExternal(dest) {
				node.SetAttributeString("target", []byte("_blank"))
				node.SetAttributeString("rel", []byte("noopener noreferrer"))
			}
		}
		return ast.WalkContinue, nil
	})
}

// SafeURL returns raw when it is relative, a fragment, or uses an http(s),
// mailto or tel scheme, and "" otherwise.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil {
		return ""
	}
	if parsed.Scheme == "" {
		return val
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}

// IsExternal reports whether href points at another host.
func IsExternal(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
