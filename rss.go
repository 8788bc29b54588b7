package blog

import (
	"bytes"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jyodsh/jyothish-in/content"
)

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	AtomXMLNS string     `xml:"xmlns:atom,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	SelfLink      atomLink  `xml:"atom:link"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// feedEntries bounds the listing to limit entries; a negative limit keeps all.
func feedEntries(records []content.Record, limit int) []content.Record {
	return Recent(records, limit)
}

// BuildRSS serializes the newest posts as an RSS 2.0 document. Entry identity
// is the post URL; dates use the RFC 1123 grammar RSS requires.
func BuildRSS(cfg SiteConfig, records []content.Record, limit int) ([]byte, error) {
	entries := feedEntries(records, limit)
	items := make([]rssItem, 0, len(entries))
	var lastBuild time.Time
	for _, rec := range entries {
		pubDate := ""
		if t, err := rec.Metadata.Published(); err == nil {
			pubDate = t.Format(time.RFC1123Z)
			if t.After(lastBuild) {
				lastBuild = t
			}
		}
		postURL := PostURL(cfg.URL, rec.Slug)
		items = append(items, rssItem{
			Title:       rec.Metadata.Title,
			Link:        postURL,
			Description: rec.Metadata.Summary,
			PubDate:     pubDate,
			GUID:        rssGUID{IsPermaLink: true, Value: postURL},
		})
	}
	feed := rssXML{
		Version:   "2.0",
		AtomXMLNS: "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        BuildURL(cfg.URL),
			Description: cfg.Description,
			SelfLink: atomLink{
				Href: cfg.URL + "/feed.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
	if !lastBuild.IsZero() {
		feed.Channel.LastBuildDate = lastBuild.Format(time.RFC1123Z)
	}
	return encodeXML(feed)
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	XMLNS   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Links   []atomLink  `xml:"link"`
	Author  *atomAuthor `xml:"author,omitempty"`
	Entries []atomEntry `xml:"entry"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title     string   `xml:"title"`
	ID        string   `xml:"id"`
	Link      atomLink `xml:"link"`
	Published string   `xml:"published,omitempty"`
	Updated   string   `xml:"updated"`
	Summary   string   `xml:"summary"`
}

// BuildAtom serializes the newest posts as an Atom 1.0 document. now is used
// for the feed's updated stamp when no post carries a date.
func BuildAtom(cfg SiteConfig, records []content.Record, limit int, now time.Time) ([]byte, error) {
	entries := feedEntries(records, limit)
	feed := atomFeed{
		XMLNS: "http://www.w3.org/2005/Atom",
		Title: cfg.Name,
		ID:    BuildURL(cfg.URL),
		Links: []atomLink{
			{Href: BuildURL(cfg.URL), Rel: "alternate", Type: "text/html"},
			{Href: cfg.URL + "/atom.xml", Rel: "self", Type: "application/atom+xml"},
		},
	}
	if cfg.Author != "" {
		feed.Author = &atomAuthor{Name: cfg.Author}
	}
	var updated time.Time
	for _, rec := range entries {
		postURL := PostURL(cfg.URL, rec.Slug)
		entry := atomEntry{
			Title:   rec.Metadata.Title,
			ID:      postURL,
			Link:    atomLink{Href: postURL, Rel: "alternate", Type: "text/html"},
			Summary: rec.Metadata.Summary,
		}
		stamp := now
		if t, err := rec.Metadata.Published(); err == nil {
			stamp = t
			entry.Published = t.UTC().Format(time.RFC3339)
		}
		entry.Updated = stamp.UTC().Format(time.RFC3339)
		if stamp.After(updated) {
			updated = stamp
		}
		feed.Entries = append(feed.Entries, entry)
	}
	if updated.IsZero() {
		updated = now
	}
	feed.Updated = updated.UTC().Format(time.RFC3339)
	return encodeXML(feed)
}

func encodeXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeXML(c echo.Context, contentType string, body []byte) error {
	return c.Blob(http.StatusOK, contentType, body)
}
