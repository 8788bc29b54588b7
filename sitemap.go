package blog

import (
	"encoding/xml"
	"time"

	"github.com/jyodsh/jyothish-in/content"
)

// staticRoutes are the non-post pages listed in the sitemap.
var staticRoutes = [][]string{
	{},
	{"blog"},
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// BuildSitemap lists the static routes, stamped with now, and every post,
// stamped with its publish date.
func BuildSitemap(cfg SiteConfig, records []content.Record, now time.Time) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(staticRoutes)+len(records))
	for _, route := range staticRoutes {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(cfg.URL, route...),
			LastMod: now.Format("2006-01-02"),
		})
	}
	for _, rec := range Listing(records) {
		lastMod := ""
		if t, err := rec.Metadata.Published(); err == nil {
			lastMod = t.Format("2006-01-02")
		}
		urls = append(urls, sitemapURL{
			Loc:     PostURL(cfg.URL, rec.Slug),
			LastMod: lastMod,
		})
	}
	return encodeXML(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

// BuildRobots returns a robots.txt that allows everything and points at the sitemap.
func BuildRobots(cfg SiteConfig) string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + cfg.URL + "/sitemap.xml\n"
}
