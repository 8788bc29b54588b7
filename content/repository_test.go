package content

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"content/hello-world.mdx":  {Data: []byte(helloWorld), ModTime: time.Unix(100, 0)},
		"content/second-post.mdx":  {Data: []byte(secondPost), ModTime: time.Unix(200, 0)},
		"content/notes.txt":        {Data: []byte("not a post")},
		"content/drafts/draft.mdx": {Data: []byte(helloWorld)},
	}
}

func TestLoadAll(t *testing.T) {
	repo := NewRepository(testFS(), RepositoryConfig{})
	coll, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if coll.Len() != 2 {
		t.Fatalf("Len = %d, want 2", coll.Len())
	}
	all := coll.All()
	if all[0].Slug != "hello-world" || all[1].Slug != "second-post" {
		t.Errorf("slugs = [%s %s], want [hello-world second-post]", all[0].Slug, all[1].Slug)
	}
	if all[0].Metadata.Title != "Hello: World" {
		t.Errorf("Title = %q, want %q", all[0].Metadata.Title, "Hello: World")
	}
}

func TestLoadAllRecognisesExtensionsCaseInsensitively(t *testing.T) {
	fsys := fstest.MapFS{
		"posts/upper.MDX": {Data: []byte(helloWorld)},
		"posts/plain.md":  {Data: []byte(secondPost)},
	}
	repo := NewRepository(fsys, RepositoryConfig{Dir: "posts"})
	coll, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if coll.Len() != 2 {
		t.Errorf("Len = %d, want 2", coll.Len())
	}

	mdOnly := NewRepository(fsys, RepositoryConfig{Dir: "posts", Extensions: []string{"md"}})
	coll, err = mdOnly.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if _, ok := coll.Get("plain"); !ok || coll.Len() != 1 {
		t.Errorf("md-only repository should load just plain, got %d records", coll.Len())
	}
}

func TestGetBySlug(t *testing.T) {
	repo := NewRepository(testFS(), RepositoryConfig{})
	for _, slug := range []string{"hello-world", "second-post"} {
		rec, ok, err := repo.GetBySlug(slug)
		if err != nil {
			t.Fatalf("GetBySlug(%q) failed: %v", slug, err)
		}
		if !ok {
			t.Fatalf("GetBySlug(%q) not found", slug)
		}
		if rec.Slug != slug {
			t.Errorf("Slug = %q, want %q", rec.Slug, slug)
		}
	}
	for _, slug := range []string{"missing", "Hello-World", "hello-world.mdx", "draft", ""} {
		_, ok, err := repo.GetBySlug(slug)
		if err != nil {
			t.Fatalf("GetBySlug(%q) failed: %v", slug, err)
		}
		if ok {
			t.Errorf("GetBySlug(%q) should not be found", slug)
		}
	}
}

func TestLoadAllFailFast(t *testing.T) {
	fsys := testFS()
	fsys["content/broken.mdx"] = &fstest.MapFile{Data: []byte("---\nsummary: no title\n---\nbody")}

	repo := NewRepository(fsys, RepositoryConfig{})
	_, err := repo.LoadAll()
	if !errors.Is(err, ErrMalformedContent) {
		t.Fatalf("LoadAll error = %v, want ErrMalformedContent", err)
	}
	var me *MalformedContentError
	if !errors.As(err, &me) {
		t.Fatalf("error should be *MalformedContentError, got %T", err)
	}
	if me.Path != "content/broken.mdx" {
		t.Errorf("Path = %q, want %q", me.Path, "content/broken.mdx")
	}
}

func TestLoadAllMissingDelimiterReportsPath(t *testing.T) {
	fsys := testFS()
	fsys["content/no-block.mdx"] = &fstest.MapFile{Data: []byte("title: x\n\nbody")}

	_, err := NewRepository(fsys, RepositoryConfig{}).LoadAll()
	var me *MalformedContentError
	if !errors.As(err, &me) {
		t.Fatalf("error should be *MalformedContentError, got %v", err)
	}
	if me.Path != "content/no-block.mdx" {
		t.Errorf("Path = %q, want %q", me.Path, "content/no-block.mdx")
	}
}

func TestLoadAllSkipInvalid(t *testing.T) {
	fsys := testFS()
	fsys["content/broken.mdx"] = &fstest.MapFile{Data: []byte("no front matter")}
	fsys["content/undated.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: Undated\nsummary: s\n---\nbody")}

	logger := &recordingLogger{}
	repo := NewRepository(fsys, RepositoryConfig{Policy: SkipInvalid, Logger: logger})
	coll, err := repo.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if coll.Len() != 2 {
		t.Errorf("Len = %d, want 2", coll.Len())
	}
	if len(logger.warnings) != 2 {
		t.Errorf("warnings = %d, want 2: %v", len(logger.warnings), logger.warnings)
	}
}

func TestLoadAllRejectsUnsafeSlug(t *testing.T) {
	fsys := testFS()
	fsys["content/Hello World.mdx"] = &fstest.MapFile{Data: []byte(secondPost)}

	_, err := NewRepository(fsys, RepositoryConfig{}).LoadAll()
	if !errors.Is(err, ErrMalformedContent) {
		t.Errorf("LoadAll error = %v, want ErrMalformedContent", err)
	}
}

func TestLoadAllDuplicateSlug(t *testing.T) {
	fsys := testFS()
	fsys["content/hello-world.md"] = &fstest.MapFile{Data: []byte(secondPost)}

	for _, policy := range []Policy{FailFast, SkipInvalid} {
		_, err := NewRepository(fsys, RepositoryConfig{Policy: policy}).LoadAll()
		var dup *DuplicateSlugError
		if !errors.As(err, &dup) {
			t.Fatalf("policy %d: error = %v, want *DuplicateSlugError", policy, err)
		}
		if dup.Slug != "hello-world" {
			t.Errorf("Slug = %q, want %q", dup.Slug, "hello-world")
		}
		if len(dup.Paths) != 2 {
			t.Errorf("Paths = %v, want two paths", dup.Paths)
		}
	}
}

func TestLoadAllMissingDirectory(t *testing.T) {
	repo := NewRepository(fstest.MapFS{}, RepositoryConfig{Dir: "nowhere"})
	_, err := repo.LoadAll()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadAll error = %v, want fs.ErrNotExist", err)
	}
}

func TestCollectionIsImmutable(t *testing.T) {
	fsys := testFS()
	fsys["content/tagged.mdx"] = &fstest.MapFile{Data: []byte("---\ntitle: T\npublishedAt: 2024-01-01\nsummary: S\ntags: go\n---\nbody")}
	coll, err := NewRepository(fsys, RepositoryConfig{}).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	rec, _ := coll.Get("tagged")
	rec.Metadata.Extra["tags"] = "changed"
	rec.Metadata.Title = "changed"

	again, _ := coll.Get("tagged")
	if again.Metadata.Extra["tags"] != "go" || again.Metadata.Title != "T" {
		t.Errorf("collection was mutated through a returned record: %+v", again.Metadata)
	}
}

func TestNewCollectionDuplicate(t *testing.T) {
	_, err := NewCollection([]Record{{Slug: "a"}, {Slug: "b"}, {Slug: "a"}})
	var dup *DuplicateSlugError
	if !errors.As(err, &dup) || dup.Slug != "a" {
		t.Errorf("NewCollection error = %v, want duplicate slug a", err)
	}
}

func TestFingerprintChangesWithFiles(t *testing.T) {
	fsys := testFS()
	repo := NewRepository(fsys, RepositoryConfig{})
	first, err := repo.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	same, _ := repo.Fingerprint()
	if first != same {
		t.Error("Fingerprint should be stable when nothing changes")
	}

	fsys["content/notes.txt"].Data = []byte("ignored files do not count")
	ignored, _ := repo.Fingerprint()
	if ignored != first {
		t.Error("Fingerprint should ignore unrecognised files")
	}

	fsys["content/hello-world.mdx"].ModTime = time.Unix(300, 0)
	edited, _ := repo.Fingerprint()
	if edited == first {
		t.Error("Fingerprint should change when a post is edited")
	}
}
