// Package content discovers, parses and validates the front-mattered post
// files that make up the blog.
package content

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Known front matter keys.
const (
	KeyTitle       = "title"
	KeyPublishedAt = "publishedAt"
	KeySummary     = "summary"
	KeyImage       = "image"
)

// dateLayouts are the ISO-8601 shapes accepted for publishedAt, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Record is a single post: its slug, front matter and raw body.
type Record struct {
	Slug     string
	Metadata Metadata
	Body     string
}

// Link returns the site-relative URL of the post.
func (r Record) Link() string {
	return "/blog/" + r.Slug + "/"
}

// Metadata is the decoded front matter block. Keys other than the known ones
// are kept in Extra.
type Metadata struct {
	Title       string            `json:"title"`
	PublishedAt string            `json:"publishedAt"`
	Summary     string            `json:"summary"`
	Image       string            `json:"image,omitempty"`
	Extra       map[string]string `json:"-"`
}

// Get returns the value for key, known or not.
func (m Metadata) Get(key string) (string, bool) {
	switch key {
	case KeyTitle:
		return m.Title, m.Title != ""
	case KeyPublishedAt:
		return m.PublishedAt, m.PublishedAt != ""
	case KeySummary:
		return m.Summary, m.Summary != ""
	case KeyImage:
		return m.Image, m.Image != ""
	}
	v, ok := m.Extra[key]
	return v, ok
}

// Published parses PublishedAt into a time.
func (m Metadata) Published() (time.Time, error) {
	return ParseDate(m.PublishedAt)
}

// Validate checks that the required keys are present and publishedAt parses.
func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.PublishedAt, validation.Required, validation.By(isISODate)),
		validation.Field(&m.Summary, validation.Required),
	)
}

func (m Metadata) clone() Metadata {
	if m.Extra != nil {
		m.Extra = maps.Clone(m.Extra)
	}
	return m
}

func fromFields(fields map[string]string) Metadata {
	m := Metadata{}
	for key, value := range fields {
		switch key {
		case KeyTitle:
			m.Title = value
		case KeyPublishedAt:
			m.PublishedAt = value
		case KeySummary:
			m.Summary = value
		case KeyImage:
			m.Image = value
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]string)
			}
			m.Extra[key] = value
		}
	}
	return m
}

// ParseDate parses an ISO-8601 date or date-time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or RFC 3339", s)
}

func isISODate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := ParseDate(s)
	return err
}
