package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/jyodsh/jyothish-in/content"
)

func TestCreatePostLoadsBack(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "content")
	now := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)

	path, err := createPost(dir, "Hello World", "", now)
	if err != nil {
		t.Fatalf("createPost: %v", err)
	}
	want, _ := slug.Normalize("Hello World")
	if filepath.Base(path) != want+".mdx" {
		t.Errorf("path = %q, want base %q", path, want+".mdx")
	}

	repo := content.NewRepository(os.DirFS(root), content.RepositoryConfig{Dir: "content"})
	rec, ok, err := repo.GetBySlug(want)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if !ok {
		t.Fatalf("post %q not found after create", want)
	}
	if rec.Metadata.Title != "Hello World" {
		t.Errorf("Title = %q, want %q", rec.Metadata.Title, "Hello World")
	}
	if rec.Metadata.PublishedAt != "2024-03-07" {
		t.Errorf("PublishedAt = %q, want %q", rec.Metadata.PublishedAt, "2024-03-07")
	}
	if rec.Metadata.Summary != "Hello World" {
		t.Errorf("Summary = %q, want title fallback", rec.Metadata.Summary)
	}
}

func TestCreatePostRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	if _, err := createPost(dir, "Same Title", "first", now); err != nil {
		t.Fatalf("createPost: %v", err)
	}
	_, err := createPost(dir, "Same Title", "second", now)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
}

func TestCreatePostRequiresTitle(t *testing.T) {
	if _, err := createPost(t.TempDir(), "   ", "", time.Now()); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := out.String(); got != "jyothish dev\n" {
		t.Errorf("version output = %q, want %q", got, "jyothish dev\n")
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JYOTHISH_NAME", "Env Blog")
	t.Setenv("JYOTHISH_FEEDLIMIT", "5")
	t.Setenv("JYOTHISH_CACHETTL", "30s")

	c := &cli{}
	cmd := c.newBuildCmd()
	if err := c.initializeConfig(cmd); err != nil {
		t.Fatalf("initializeConfig: %v", err)
	}
	if c.cfg.Name != "Env Blog" {
		t.Errorf("Name = %q, want %q", c.cfg.Name, "Env Blog")
	}
	if c.cfg.FeedLimit != 5 {
		t.Errorf("FeedLimit = %d, want 5", c.cfg.FeedLimit)
	}
	if c.cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", c.cfg.CacheTTL)
	}
	if c.cfg.ContentDir != "content" {
		t.Errorf("ContentDir = %q, want default %q", c.cfg.ContentDir, "content")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	body := "name: File Blog\nurl: https://example.com/\noutputDir: site\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &cli{cfgFile: path}
	cmd := c.newBuildCmd()
	if err := c.initializeConfig(cmd); err != nil {
		t.Fatalf("initializeConfig: %v", err)
	}
	if c.cfg.Name != "File Blog" {
		t.Errorf("Name = %q, want %q", c.cfg.Name, "File Blog")
	}
	if c.cfg.OutputDir != "site" {
		t.Errorf("OutputDir = %q, want %q", c.cfg.OutputDir, "site")
	}
	if c.cfg.URL != "https://example.com/" {
		t.Errorf("URL = %q, want %q", c.cfg.URL, "https://example.com/")
	}
}

func TestConfigFileMissing(t *testing.T) {
	c := &cli{cfgFile: filepath.Join(t.TempDir(), "nope.yaml")}
	if err := c.initializeConfig(c.newBuildCmd()); err == nil {
		t.Fatal("expected error for an explicit config file that does not exist")
	}
}
