package blog

import (
	"net/url"
	"strings"

	"github.com/jyodsh/jyothish-in/content"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title         string
	Description   string
	URL           string // canonical + og:url
	OGType        string // "website" or "article"
	Image         string // absolute og:image URL
	PublishedTime string // article:published_time, empty for non-articles
}

// OGImageURL returns the URL of the generated preview card for title.
func OGImageURL(base, title string) string {
	return strings.TrimSuffix(base, "/") + "/og?title=" + url.QueryEscape(title)
}

// RecordMeta maps a post to the metadata its page head needs. The preview
// image is the post's own image when set, otherwise a generated card.
func RecordMeta(cfg SiteConfig, rec content.Record) PageMeta {
	image := OGImageURL(cfg.URL, rec.Metadata.Title)
	if img := strings.TrimSpace(rec.Metadata.Image); img != "" {
		image = AbsoluteURL(cfg.URL, img)
	}
	return PageMeta{
		Title:         rec.Metadata.Title,
		Description:   rec.Metadata.Summary,
		URL:           PostURL(cfg.URL, rec.Slug),
		OGType:        "article",
		Image:         image,
		PublishedTime: rec.Metadata.PublishedAt,
	}
}

// SiteMeta builds metadata for a non-post page. An empty title falls back to
// the site name.
func SiteMeta(cfg SiteConfig, title string, pathSegments ...string) PageMeta {
	if title == "" {
		title = cfg.Name
	}
	return PageMeta{
		Title:       title,
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL, pathSegments...),
		OGType:      "website",
		Image:       OGImageURL(cfg.URL, title),
	}
}
