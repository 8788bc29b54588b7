package blog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jyodsh/jyothish-in/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// AbsoluteURL resolves ref against base. Absolute refs are returned unchanged.
func AbsoluteURL(base, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// PostURL returns the canonical URL of a post.
func PostURL(base, slug string) string {
	return BuildURL(base, "blog", slug)
}

// FormatDate renders an ISO-8601 date as "January 2, 2006". With
// includeRelative it appends how long ago that was in calendar units:
// "(Today)", "(3d ago)", "(2mo ago)" or "(1y ago)". Unparseable input is
// returned unchanged.
func FormatDate(date string, includeRelative bool, now time.Time) string {
	t, err := content.ParseDate(date)
	if err != nil {
		return date
	}
	full := t.Format("January 2, 2006")
	if !includeRelative {
		return full
	}
	var rel string
	switch years, months, days := now.Year()-t.Year(), int(now.Month())-int(t.Month()), now.Day()-t.Day(); {
	case years > 0:
		rel = fmt.Sprintf("%dy ago", years)
	case months > 0:
		rel = fmt.Sprintf("%dmo ago", months)
	case days > 0:
		rel = fmt.Sprintf("%dd ago", days)
	default:
		rel = "Today"
	}
	return full + " (" + rel + ")"
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(cfg SiteConfig, rec content.Record) string {
	meta := RecordMeta(cfg, rec)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      rec.Metadata.Title,
		"description":   rec.Metadata.Summary,
		"datePublished": rec.Metadata.PublishedAt,
		"dateModified":  rec.Metadata.PublishedAt,
		"url":           meta.URL,
		"image":         meta.Image,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   meta.URL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
