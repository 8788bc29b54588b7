// Package views provides the default page templates for the blog.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/a-h/templ"

	blog "github.com/jyodsh/jyothish-in"
	"github.com/jyodsh/jyothish-in/content"
	"github.com/jyodsh/jyothish-in/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is what every page template receives.
type pageData struct {
	Config blog.SiteConfig
	Meta   blog.PageMeta
	Posts  []content.Record
	Post   content.Record
}

// Default returns the bundled views using the wall clock for relative dates.
func Default() blog.ViewFuncs {
	return New(time.Now)
}

// New returns the bundled views. now drives the "3d ago" style dates.
// It panics if the embedded templates fail to parse.
func New(now func() time.Time) blog.ViewFuncs {
	funcs := template.FuncMap{
		"date": func(s string) string {
			return blog.FormatDate(s, false, now())
		},
		"relDate": func(s string) string {
			return blog.FormatDate(s, true, now())
		},
		"markdown": markdown.HTML,
		"siteLD": func(cfg blog.SiteConfig) template.JS {
			return template.JS(blog.WebsiteJsonLD(cfg))
		},
		"postingLD": func(cfg blog.SiteConfig, rec content.Record) template.JS {
			return template.JS(blog.BlogPostingJsonLD(cfg, rec))
		},
		"year": func() int {
			return now().Year()
		},
	}

	home := mustPage(funcs, "home.html")
	list := mustPage(funcs, "blog.html")
	post := mustPage(funcs, "post.html")
	notFound := mustPage(funcs, "404.html")
	serverError := mustPage(funcs, "500.html")

	return blog.ViewFuncs{
		Home: func(cfg blog.SiteConfig, recent []content.Record, meta blog.PageMeta) templ.Component {
			return templ.FromGoHTML(home, pageData{Config: cfg, Meta: meta, Posts: recent})
		},
		Blog: func(cfg blog.SiteConfig, posts []content.Record, meta blog.PageMeta) templ.Component {
			return templ.FromGoHTML(list, pageData{Config: cfg, Meta: meta, Posts: posts})
		},
		Post: func(cfg blog.SiteConfig, rec content.Record, meta blog.PageMeta) templ.Component {
			return templ.FromGoHTML(post, pageData{Config: cfg, Meta: meta, Post: rec})
		},
		NotFound: func(cfg blog.SiteConfig) templ.Component {
			return templ.FromGoHTML(notFound, pageData{Config: cfg, Meta: blog.SiteMeta(cfg, "Page Not Found")})
		},
		ServerError: func(cfg blog.SiteConfig) templ.Component {
			return templ.FromGoHTML(serverError, pageData{Config: cfg, Meta: blog.SiteMeta(cfg, "Server Error")})
		},
	}
}

// mustPage parses the shared layout together with one page and returns the
// layout entry point.
func mustPage(funcs template.FuncMap, page string) *template.Template {
	t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+page)
	if err != nil {
		panic(fmt.Sprintf("views: parse %s: %v", page, err))
	}
	base := t.Lookup("base")
	if base == nil {
		panic(fmt.Sprintf("views: %s has no base template", page))
	}
	return base
}
