package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = errors.New("content: record not found")
	// ErrMalformedContent matches every *MalformedContentError via errors.Is.
	ErrMalformedContent = errors.New("content: malformed content")
)

// MalformedContentError reports a content file whose front matter is missing,
// unterminated, or fails validation.
type MalformedContentError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedContentError) Error() string {
	var b strings.Builder
	b.WriteString("content: malformed")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MalformedContentError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrMalformedContent) match any MalformedContentError.
func (e *MalformedContentError) Is(target error) bool {
	return target == ErrMalformedContent
}

// DuplicateSlugError is returned when two content files resolve to the same slug.
type DuplicateSlugError struct {
	Slug  string
	Paths []string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("content: duplicate slug %q in %s", e.Slug, strings.Join(e.Paths, ", "))
}
