// Package scaffold holds the templates the CLI uses to start new posts.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"text/template"
)

// Templates contains the scaffold files. They use Go text/template syntax
// and have a .tmpl suffix.
//
//go:embed templates/*.tmpl
var Templates embed.FS

// Post is the data a new post template receives.
type Post struct {
	Title       string
	PublishedAt string
	Summary     string
}

// WritePost renders the post template for p into w.
func WritePost(w io.Writer, p Post) error {
	tmpl, err := template.ParseFS(Templates, "templates/post.mdx.tmpl")
	if err != nil {
		return fmt.Errorf("parse post template: %w", err)
	}
	return tmpl.Execute(w, p)
}
