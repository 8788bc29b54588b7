package scaffold

import (
	"bytes"
	"testing"

	"github.com/jyodsh/jyothish-in/content"
)

func TestWritePostParsesBack(t *testing.T) {
	var buf bytes.Buffer
	err := WritePost(&buf, Post{
		Title:       `Say "Hello: World"`,
		PublishedAt: "2024-03-07",
		Summary:     "First post",
	})
	if err != nil {
		t.Fatalf("WritePost: %v", err)
	}

	rec, err := content.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rec.Metadata.Title != `Say "Hello: World"` {
		t.Errorf("Title = %q, want %q", rec.Metadata.Title, `Say "Hello: World"`)
	}
	if rec.Metadata.PublishedAt != "2024-03-07" {
		t.Errorf("PublishedAt = %q, want %q", rec.Metadata.PublishedAt, "2024-03-07")
	}
	if rec.Metadata.Summary != "First post" {
		t.Errorf("Summary = %q, want %q", rec.Metadata.Summary, "First post")
	}
	if err := rec.Metadata.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if rec.Body != "Write the post here." {
		t.Errorf("Body = %q", rec.Body)
	}
}
