package blog

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://jyothish.in", nil, "https://jyothish.in"},
		{"https://jyothish.in", []string{"blog"}, "https://jyothish.in/blog/"},
		{"https://jyothish.in", []string{"blog", "hello-world"}, "https://jyothish.in/blog/hello-world/"},
		{"https://example.com/sub", []string{"blog"}, "https://example.com/sub/blog/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://jyothish.in", "/images/a.png", "https://jyothish.in/images/a.png"},
		{"https://jyothish.in", "images/a.png", "https://jyothish.in/images/a.png"},
		{"https://jyothish.in/", "/a.png", "https://jyothish.in/a.png"},
		{"https://jyothish.in", "https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.base, tt.ref); got != tt.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		date     string
		relative bool
		want     string
	}{
		{"2024-03-10", false, "March 10, 2024"},
		{"2024-03-10", true, "March 10, 2024 (Today)"},
		{"2024-03-07", true, "March 7, 2024 (3d ago)"},
		{"2024-01-07", true, "January 7, 2024 (2mo ago)"},
		{"2022-11-20", true, "November 20, 2022 (2y ago)"},
		{"2024-03-10T08:30:00Z", true, "March 10, 2024 (Today)"},
		{"not a date", true, "not a date"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.date, tt.relative, now); got != tt.want {
			t.Errorf("FormatDate(%q, %v) = %q, want %q", tt.date, tt.relative, got, tt.want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	var data map[string]any
	if err := json.Unmarshal([]byte(WebsiteJsonLD(testSite)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["@type"] != "WebSite" {
		t.Errorf("@type = %v, want WebSite", data["@type"])
	}
	if data["url"] != "https://jyothish.in" {
		t.Errorf("url = %v", data["url"])
	}
	if data["description"] != "Notes & essays" {
		t.Errorf("description = %v", data["description"])
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	r := rec("hello-world", "Hello", "2024-03-07")
	var data map[string]any
	if err := json.Unmarshal([]byte(BlogPostingJsonLD(testSite, r)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	tests := map[string]string{
		"@type":         "BlogPosting",
		"headline":      "Hello",
		"datePublished": "2024-03-07",
		"url":           "https://jyothish.in/blog/hello-world/",
		"image":         "https://jyothish.in/og?title=Hello",
	}
	for key, want := range tests {
		if data[key] != want {
			t.Errorf("%s = %v, want %q", key, data[key], want)
		}
	}
}
